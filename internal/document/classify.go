package document

import (
	"regexp"
	"strings"

	"lecturenotes/internal/domain"
	"lecturenotes/internal/markdown"
)

var (
	// Lower-case prefixes of lines the model emits when it refuses to answer.
	//nolint:gochecknoglobals // Read-only list.
	refusalPrefixes = []string{
		"please provide the transcript",
	}

	headingMarkerRe = regexp.MustCompile(`^#{2,}\s*`)
	bulletMarkerRe  = regexp.MustCompile(`^[*\-•]+\s*`)
)

//nolint:gochecknoglobals // Read-only list.
var bulletPrefixes = []string{"* ", "- ", "• "}

// Classify maps summary text onto blocks, one per non-empty line, followed by
// a trailing spacer.
func Classify(summary string) []domain.Block {
	return DefaultStyles.Classify(summary)
}

func (s Styles) Classify(summary string) []domain.Block {
	lines := strings.Split(strings.TrimSpace(summary), "\n")
	blocks := make([]domain.Block, 0, len(lines)+1)

	for _, line := range lines {
		block, ok := s.ClassifyLine(line)
		if !ok {
			continue
		}

		blocks = append(blocks, block)
	}

	return append(blocks, domain.Block{
		Kind:  domain.BlockSpacer,
		Style: s.For(domain.BlockSpacer),
	})
}

// ClassifyLine reports false for lines that produce no block.
func (s Styles) ClassifyLine(line string) (domain.Block, bool) {
	line = strings.TrimSpace(line)
	if line == "" || isRefusal(line) {
		return domain.Block{}, false
	}

	var kind domain.BlockKind
	var text string

	switch {
	case headingMarkerRe.MatchString(line):
		kind = domain.BlockHeading
		text = markdown.StripBold(strings.TrimSpace(headingMarkerRe.ReplaceAllString(line, "")))
		if text == "" {
			return domain.Block{}, false
		}
	case isBullet(line):
		kind = domain.BlockBullet
		text = markdown.BoldToTags(strings.TrimSpace(bulletMarkerRe.ReplaceAllString(line, "")))
	default:
		kind = domain.BlockParagraph
		text = markdown.BoldToTags(line)
	}

	return domain.Block{Kind: kind, Text: text, Style: s.For(kind)}, true
}

func isRefusal(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range refusalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func isBullet(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
