package summarizer

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsTranscriptVerbatim(t *testing.T) {
	transcripts := []string{
		"plain text",
		"  leading and trailing whitespace  \n",
		"\"\"\" fences inside \"\"\"",
		"unicode: naïve café — ∑ x²",
		"",
	}

	for _, transcript := range transcripts {
		prompt := BuildPrompt(transcript)

		if !strings.HasPrefix(prompt, promptInstructions) {
			t.Fatalf("expected prompt to start with instructions for %q", transcript)
		}

		want := promptInstructions + "\n\n\"\"\"\n" + transcript + "\n\"\"\""
		if prompt != want {
			t.Fatalf("unexpected prompt for %q:\n%s", transcript, prompt)
		}
	}
}

func TestBuildPromptInstructions(t *testing.T) {
	prompt := BuildPrompt("text")

	if !strings.HasPrefix(prompt, "Summarize the following Coursera transcript into a neat, concise handout suitable for revision.") {
		t.Fatalf("unexpected instructions:\n%s", prompt)
	}
}
