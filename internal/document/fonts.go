package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const (
	fontFamily = "Go"
	fontBold   = "B"
)

var ErrUnsupportedCharacter = errors.New("unsupported character")

//nolint:gochecknoglobals // Parsed once on first use.
var parsedFonts = sync.OnceValues(func() (map[string]*sfnt.Font, error) {
	regular, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	bold, err := sfnt.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return map[string]*sfnt.Font{"": regular, fontBold: bold}, nil
})

// registerFonts embeds the Go fonts as UTF-8 TrueType fonts so text is not
// squeezed into a single-byte code page.
func registerFonts(pdf *fpdf.Fpdf) {
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, fontBold, gobold.TTF)
}

// glyphChecker reports runes the embedded fonts cannot draw.
type glyphChecker struct {
	fonts map[string]*sfnt.Font
	buf   sfnt.Buffer
}

func newGlyphChecker() (*glyphChecker, error) {
	fonts, err := parsedFonts()
	if err != nil {
		return nil, err
	}

	return &glyphChecker{fonts: fonts}, nil
}

// prepare turns control characters into spaces and fails on the first rune
// without a glyph in the font for style.
func (g *glyphChecker) prepare(text string, style string) (string, error) {
	font, ok := g.fonts[style]
	if !ok {
		return "", fmt.Errorf("unknown font style %q", style)
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	for _, r := range text {
		idx, err := font.GlyphIndex(&g.buf, r)
		if err != nil {
			return "", fmt.Errorf("look up glyph (rune = %U): %w", r, err)
		}
		if idx == 0 {
			return "", fmt.Errorf("%w %q (%U)", ErrUnsupportedCharacter, r, r)
		}
	}

	return text, nil
}
