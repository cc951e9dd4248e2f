package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"lecturenotes/internal/config"
	"lecturenotes/internal/document"
	"lecturenotes/internal/notes"
	"lecturenotes/internal/summarizer"
)

const outputFileMode = 0o644

func newSummarizeCommand(fs afero.Fs) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summarize TRANSCRIPT",
		Short: "Summarize a transcript file and write the PDF handout",
		Long: `Summarize a transcript file and write the PDF handout.

The summary is printed to stdout. Upstream failures are printed to stderr
as "ERROR: <status> - <body>" and no PDF is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			transcript, err := readText(fs, args[0])
			if err != nil {
				return err
			}

			s, err := initOpenAISummarizer(cfg)
			if err != nil {
				return fmt.Errorf("create summarizer: %w", err)
			}

			summary, err := s.Summarize(cmd.Context(), summarizer.Input{Text: transcript})
			if err != nil {
				log.ErrorContext(cmd.Context(), "Failed to summarize transcript",
					"error", err,
					"transcript", args[0],
					"transcriptBytes", len(transcript))

				return err
			}

			if _, err = fmt.Fprintln(cmd.OutOrStdout(), summary); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}

			if err = writePDF(fs, output, summary); err != nil {
				return err
			}

			log.InfoContext(cmd.Context(), "Summary is written",
				"transcript", args[0],
				"output", output,
				"summaryBytes", len(summary))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", notes.PDFFilename(""), "PDF output path")

	return cmd
}

// readText reads a UTF-8 text file, dropping a leading byte order mark.
func readText(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return notes.DecodeTranscript(f)
}

func writePDF(fs afero.Fs, path string, summary string) error {
	data, err := document.RenderPDF(document.Classify(summary))
	if err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}

	if err = afero.WriteFile(fs, path, data, outputFileMode); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}

	return nil
}
