package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRootCommand(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lecturenotes",
		Short: "Summarize lecture transcripts into PDF handouts",
		Long: `lecturenotes turns a plain-text lecture transcript into a revision handout.

Without a subcommand it runs the web service (same as "lecturenotes serve").`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSummarizeCommand(fs))
	cmd.AddCommand(newRenderCommand(fs))

	return cmd
}
