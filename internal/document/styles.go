package document

import "lecturenotes/internal/domain"

// Styles holds one style per block kind. DefaultStyles is built once and never
// mutated.
type Styles struct {
	Body    domain.Style
	Heading domain.Style
	Bullet  domain.Style
	Spacer  domain.Style
}

//nolint:gochecknoglobals // Static style table.
var DefaultStyles = Styles{
	Body: domain.Style{
		FontFamily:  fontFamily,
		FontSize:    11,
		Leading:     14,
		SpaceBefore: 6,
		SpaceAfter:  6,
	},
	Heading: domain.Style{
		FontFamily:  fontFamily,
		FontStyle:   fontBold,
		FontSize:    14,
		Leading:     18,
		SpaceBefore: 12,
		SpaceAfter:  10,
	},
	Bullet: domain.Style{
		FontFamily:   fontFamily,
		FontSize:     11,
		Leading:      14,
		SpaceAfter:   4,
		LeftIndent:   20,
		BulletIndent: 10,
	},
	Spacer: domain.Style{
		Leading: 20,
	},
}

func (s Styles) For(kind domain.BlockKind) domain.Style {
	switch kind {
	case domain.BlockHeading:
		return s.Heading
	case domain.BlockBullet:
		return s.Bullet
	case domain.BlockSpacer:
		return s.Spacer
	default:
		return s.Body
	}
}
