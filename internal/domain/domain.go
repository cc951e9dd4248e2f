package domain

import "time"

// Session is the per-user state carried between requests. Summary is the
// single cache slot: empty means nothing has been generated yet.
type Session struct {
	ID             string
	TranscriptName string
	Transcript     string
	TranscriptHash string
	Summary        string
	PDFName        string
	UpdatedAt      time.Time
}

type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
	BlockSpacer    BlockKind = "spacer"
)

type RGB struct {
	R int
	G int
	B int
}

type Style struct {
	FontFamily   string
	FontStyle    string
	FontSize     float64
	Leading      float64
	SpaceBefore  float64
	SpaceAfter   float64
	LeftIndent   float64
	BulletIndent float64
	TextColor    RGB
}

// Block is one styled unit of a rendered document. Text may contain <b> and
// </b> tags and nothing else.
type Block struct {
	Kind  BlockKind
	Text  string
	Style Style
}
