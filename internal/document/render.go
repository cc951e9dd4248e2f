package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"mvdan.cc/xurls/v2"

	"lecturenotes/internal/domain"
	"lecturenotes/internal/markdown"
)

const (
	pageSize  = "Letter"
	pageUnit  = "pt"
	pageOrien = "P"

	marginLeft   = 40
	marginRight  = 40
	marginTop    = 60
	marginBottom = 40

	bulletGlyph = "•"
	creator     = "lecturenotes"
)

//nolint:gochecknoglobals // Compiled once.
var (
	urlRe     = xurls.Strict()
	linkColor = domain.RGB{R: 0, G: 0, B: 238}
)

// RenderPDF lays blocks out on US Letter pages and returns the document bytes.
func RenderPDF(blocks []domain.Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, blocks); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Render writes blocks as a PDF document to w. Pagination is left to the
// layout engine's automatic page breaks. Text the embedded fonts cannot draw
// fails with ErrUnsupportedCharacter.
func Render(w io.Writer, blocks []domain.Block) error {
	glyphs, err := newGlyphChecker()
	if err != nil {
		return err
	}

	pdf := fpdf.New(pageOrien, pageUnit, pageSize, "")
	registerFonts(pdf)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCreator(creator, true)
	pdf.AddPage()

	for i, block := range blocks {
		switch block.Kind {
		case domain.BlockSpacer:
			pdf.Ln(block.Style.Leading)
		default:
			err = writeBlock(pdf, glyphs, block)
		}

		if err == nil && pdf.Err() {
			err = pdf.Error()
		}
		if err != nil {
			return fmt.Errorf("lay out block (index = %d, kind = %s): %w", i, block.Kind, err)
		}
	}

	if err = pdf.Output(w); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}

	return nil
}

func writeBlock(pdf *fpdf.Fpdf, glyphs *glyphChecker, block domain.Block) error {
	st := block.Style

	if st.SpaceBefore > 0 && pdf.GetY() > marginTop {
		pdf.Ln(st.SpaceBefore)
	}

	left := marginLeft + st.LeftIndent
	pdf.SetLeftMargin(left)
	pdf.SetTextColor(st.TextColor.R, st.TextColor.G, st.TextColor.B)

	if block.Kind == domain.BlockBullet {
		pdf.SetFont(st.FontFamily, st.FontStyle, st.FontSize)
		pdf.SetX(marginLeft + st.BulletIndent)
		pdf.Write(st.Leading, bulletGlyph)
	}
	pdf.SetX(left)

	for _, span := range markdown.Spans(block.Text) {
		fontStyle := st.FontStyle
		if span.Bold && !strings.Contains(fontStyle, fontBold) {
			fontStyle += fontBold
		}

		text, err := glyphs.prepare(span.Text, fontStyle)
		if err != nil {
			return err
		}

		pdf.SetFont(st.FontFamily, fontStyle, st.FontSize)
		writeLinked(pdf, st, text)
	}

	pdf.Ln(st.Leading)
	pdf.SetLeftMargin(marginLeft)

	if st.SpaceAfter > 0 {
		pdf.Ln(st.SpaceAfter)
	}

	return nil
}

// writeLinked writes text, turning every URL in it into a clickable link.
func writeLinked(pdf *fpdf.Fpdf, st domain.Style, text string) {
	last := 0

	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			pdf.Write(st.Leading, text[last:loc[0]])
		}

		target := text[loc[0]:loc[1]]
		pdf.SetTextColor(linkColor.R, linkColor.G, linkColor.B)
		pdf.WriteLinkString(st.Leading, target, target)
		pdf.SetTextColor(st.TextColor.R, st.TextColor.G, st.TextColor.B)

		last = loc[1]
	}

	if last < len(text) {
		pdf.Write(st.Leading, text[last:])
	}
}
