package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"lecturenotes/internal/document"
	"lecturenotes/internal/domain"
	"lecturenotes/internal/session"
	"lecturenotes/internal/summarizer"
)

const (
	DefaultPDFName = "summary"
	pdfExtension   = ".pdf"
)

var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoTranscript    = errors.New("no transcript uploaded")
	ErrNoSummary       = errors.New("no summary generated")
)

// Service owns the per-session summary slot. Every method takes the session
// explicitly and persists changes through the store.
type Service struct {
	summarizer summarizer.Summarizer
	store      session.Store
	group      singleflight.Group
	log        *slog.Logger
}

func NewService(s summarizer.Summarizer, store session.Store, log *slog.Logger) *Service {
	return &Service{
		summarizer: s,
		store:      store,
		log:        log,
	}
}

// Session loads the session by ID, or creates and stores a new one when the ID
// is empty or unknown.
func (s *Service) Session(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		sess, err := s.store.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("get session: %w", err)
		}
	}

	sess := &domain.Session{
		ID:      session.NewID(),
		PDFName: DefaultPDFName,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.DebugContext(ctx, "Session is created",
		"sessionID", sess.ID)

	return sess, nil
}

// Upload stores the transcript. A transcript that differs from the stored one
// empties the summary slot; the same text keeps it.
func (s *Service) Upload(ctx context.Context, sess *domain.Session, name string, transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return ErrEmptyTranscript
	}

	hash := transcriptHash(transcript)
	if hash != sess.TranscriptHash {
		sess.Summary = ""
	}

	sess.TranscriptName = strings.TrimSpace(name)
	sess.Transcript = transcript
	sess.TranscriptHash = hash

	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Summary returns the cached summary or generates it with exactly one
// summarizer call. Failures leave the slot empty.
func (s *Service) Summary(ctx context.Context, sess *domain.Session) (string, error) {
	if sess.Summary != "" {
		return sess.Summary, nil
	}

	if sess.Transcript == "" {
		return "", ErrNoTranscript
	}

	v, err, shared := s.group.Do(flightKey(sess), func() (any, error) {
		stored, getErr := s.store.Get(ctx, sess.ID)
		if getErr == nil && stored.Summary != "" && stored.TranscriptHash == sess.TranscriptHash {
			return stored.Summary, nil
		}

		return s.summarizer.Summarize(ctx, summarizer.Input{Text: sess.Transcript})
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to summarize transcript",
			"error", err,
			"sessionID", sess.ID,
			"transcriptName", sess.TranscriptName,
			"transcriptBytes", len(sess.Transcript),
			"shared", shared)

		return "", err
	}

	summary, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected summary type %T", v)
	}

	sess.Summary = summary
	if err = s.storeSummary(ctx, sess); err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "Summary is generated",
		"sessionID", sess.ID,
		"transcriptName", sess.TranscriptName,
		"transcriptBytes", len(sess.Transcript),
		"summaryBytes", len(summary),
		"shared", shared)

	return summary, nil
}

// storeSummary writes sess.Summary into the stored session, unless another
// request has replaced the transcript in the meantime. Other stored fields are
// kept as they are.
func (s *Service) storeSummary(ctx context.Context, sess *domain.Session) error {
	stored, err := s.store.Get(ctx, sess.ID)
	if errors.Is(err, session.ErrNotFound) {
		stored = sess
	} else if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if stored.TranscriptHash != sess.TranscriptHash {
		s.log.InfoContext(ctx, "Transcript is replaced so summary is not cached",
			"sessionID", sess.ID,
			"transcriptName", sess.TranscriptName)

		return nil
	}

	stored.Summary = sess.Summary
	if err = s.store.Save(ctx, stored); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func flightKey(sess *domain.Session) string {
	return sess.ID + ":" + sess.TranscriptHash
}

// Regenerate empties the slot and generates a new summary.
func (s *Service) Regenerate(ctx context.Context, sess *domain.Session) (string, error) {
	if sess.Transcript == "" {
		return "", ErrNoTranscript
	}

	sess.Summary = ""
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return s.Summary(ctx, sess)
}

func (s *Service) SetPDFName(ctx context.Context, sess *domain.Session, name string) error {
	sess.PDFName = strings.TrimSpace(name)

	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Document renders the cached summary. A non-empty name overrides the
// session's PDF name.
func (s *Service) Document(ctx context.Context, sess *domain.Session, name string) ([]byte, string, error) {
	if sess.Summary == "" {
		return nil, "", ErrNoSummary
	}

	if strings.TrimSpace(name) == "" {
		name = sess.PDFName
	}

	blocks := document.Classify(sess.Summary)

	data, err := document.RenderPDF(blocks)
	if err != nil {
		return nil, "", fmt.Errorf("render PDF: %w", err)
	}

	filename := PDFFilename(name)

	s.log.DebugContext(ctx, "Document is rendered",
		"sessionID", sess.ID,
		"filename", filename,
		"blocks", len(blocks),
		"bytes", len(data))

	return data, filename, nil
}

// PDFFilename returns "<name>.pdf", falling back to "summary.pdf".
func PDFFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPDFName
	}

	return name + pdfExtension
}
