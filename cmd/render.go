package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"lecturenotes/internal/notes"
)

func newRenderCommand(fs afero.Fs) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render SUMMARY",
		Short: "Render an existing summary text file to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := readText(fs, args[0])
			if err != nil {
				return err
			}

			if err = writePDF(fs, output, summary); err != nil {
				return err
			}

			slog.DebugContext(cmd.Context(), "Summary is rendered",
				"summary", args[0],
				"output", output)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", notes.PDFFilename(""), "PDF output path")

	return cmd
}
