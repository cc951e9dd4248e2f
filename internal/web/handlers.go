package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"lecturenotes/internal/domain"
	"lecturenotes/internal/markdown"
	"lecturenotes/internal/notes"
)

const (
	sessionCookie     = "lecturenotes_session"
	transcriptField   = "transcript"
	pdfNameField      = "pdf_name"
	transcriptExt     = ".txt"
	multipartMemory   = 8 << 20
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypeJSON   = "application/json"
	contentTypePDF    = "application/pdf"
	dispositionAttach = "attachment"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *domain.Session)

type pageData struct {
	TranscriptName string
	HasTranscript  bool
	Summary        string
	Preview        template.HTML
	PDFName        string
	Error          string
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /{$}", s.withSession(s.handleIndex))
	mux.HandleFunc("POST /summarize", s.withSession(s.handleSummarize))
	mux.HandleFunc("POST /filename", s.withSession(s.handleFilename))
	mux.HandleFunc("POST /regenerate", s.withSession(s.handleRegenerate))
	mux.HandleFunc("GET /download", s.withSession(s.handleDownload))
}

// withSession resolves the session from the cookie, creating a new one when it
// is missing or unknown, and passes it to h.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			id = cookie.Value
		}

		sess, err := s.cfg.Service.Session(r.Context(), id)
		if err != nil {
			s.log.ErrorContext(r.Context(), "Failed to load session",
				"error", err,
				"sessionID", id)
			http.Error(w, "failed to load session", http.StatusInternalServerError)

			return
		}

		if sess.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		h(w, r, sess)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	s.renderPage(w, r, sess, http.StatusOK, "")
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		status := http.StatusBadRequest

		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}

		s.log.WarnContext(ctx, "Failed to parse upload",
			"error", err,
			"sessionID", sess.ID)
		s.renderPage(w, r, sess, status, "failed to read upload: "+err.Error())

		return
	}

	if values, ok := r.MultipartForm.Value[pdfNameField]; ok && len(values) > 0 {
		if err := s.cfg.Service.SetPDFName(ctx, sess, values[0]); err != nil {
			s.fail(w, r, sess, err)

			return
		}
	}

	file, header, err := r.FormFile(transcriptField)
	if err != nil {
		s.renderPage(w, r, sess, http.StatusBadRequest, "transcript file is required")

		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), transcriptExt) {
		s.renderPage(w, r, sess, http.StatusBadRequest, "transcript must be a .txt file")

		return
	}

	transcript, err := notes.DecodeTranscript(file)
	if err != nil {
		s.renderPage(w, r, sess, http.StatusBadRequest, "failed to read upload: "+err.Error())

		return
	}

	if err = s.cfg.Service.Upload(ctx, sess, header.Filename, transcript); err != nil {
		s.fail(w, r, sess, err)

		return
	}

	if _, err = s.cfg.Service.Summary(ctx, sess); err != nil {
		s.fail(w, r, sess, err)

		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFilename(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	if err := s.cfg.Service.SetPDFName(r.Context(), sess, r.PostFormValue(pdfNameField)); err != nil {
		s.fail(w, r, sess, err)

		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	if _, err := s.cfg.Service.Regenerate(r.Context(), sess); err != nil {
		s.fail(w, r, sess, err)

		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, sess *domain.Session) {
	data, filename, err := s.cfg.Service.Document(r.Context(), sess, r.URL.Query().Get("name"))
	if errors.Is(err, notes.ErrNoSummary) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render document",
			"error", err,
			"sessionID", sess.ID)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", contentTypePDF)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType(dispositionAttach, map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	if _, err = w.Write(data); err != nil {
		s.log.WarnContext(r.Context(), "Failed to write document",
			"error", err,
			"sessionID", sess.ID)
	}
}

// fail renders the page with err shown verbatim.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, sess *domain.Session, err error) {
	s.renderPage(w, r, sess, errorStatus(err), err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, notes.ErrEmptyTranscript), errors.Is(err, notes.ErrNoTranscript):
		return http.StatusBadRequest
	case errors.Is(err, notes.ErrNoSummary):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) renderPage(
	w http.ResponseWriter,
	r *http.Request,
	sess *domain.Session,
	status int,
	errMessage string,
) {
	data := pageData{
		TranscriptName: sess.TranscriptName,
		HasTranscript:  sess.Transcript != "",
		Summary:        sess.Summary,
		PDFName:        sess.PDFName,
		Error:          errMessage,
	}

	if sess.Summary != "" {
		preview, err := markdown.ToHTML(sess.Summary)
		if err != nil {
			s.log.WarnContext(r.Context(), "Failed to render preview",
				"error", err,
				"sessionID", sess.ID)
		} else {
			data.Preview = template.HTML(preview) //nolint:gosec // goldmark drops raw HTML.
		}
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)

	if err := s.page.Execute(w, data); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render page",
			"error", err,
			"sessionID", sess.ID)
	}
}
