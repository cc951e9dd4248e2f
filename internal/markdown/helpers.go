package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

const (
	boldMarker   = "**"
	boldOpenTag  = "<b>"
	boldCloseTag = "</b>"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldTagRe = regexp.MustCompile(`</?b>`)

	//nolint:gochecknoglobals // Converter is safe for concurrent use.
	converter = goldmark.New()
)

// Span is a run of text with a single weight.
type Span struct {
	Text string
	Bold bool
}

// BoldToTags rewrites **text** into <b>text</b>. Unpaired markers are left as is.
func BoldToTags(input string) string {
	if !strings.Contains(input, boldMarker) {
		return input
	}

	return boldRe.ReplaceAllString(input, boldOpenTag+"${1}"+boldCloseTag)
}

func StripBold(input string) string {
	return strings.ReplaceAll(input, boldMarker, "")
}

// Spans splits inline markup on <b> and </b> tags. Any other text, including
// stray angle brackets, is kept literally.
func Spans(markup string) []Span {
	var spans []Span
	bold := false
	last := 0

	for _, loc := range boldTagRe.FindAllStringIndex(markup, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: markup[last:loc[0]], Bold: bold})
		}
		bold = markup[loc[0]+1] != '/'
		last = loc[1]
	}

	if last < len(markup) {
		spans = append(spans, Span{Text: markup[last:], Bold: bold})
	}

	return spans
}

// ToHTML renders markdown for the browser preview. Raw HTML in the input is
// not passed through.
func ToHTML(input string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	return buf.String(), nil
}
