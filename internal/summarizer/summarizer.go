package summarizer

import (
	"context"
)

// Input describes the payload for a summary request.
type Input struct {
	// Text is the raw transcript. It is sent as is, without trimming or truncation.
	Text string
}

// Summarizer produces a single summary for a given transcript.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}
