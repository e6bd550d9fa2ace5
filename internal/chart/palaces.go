package chart

import (
	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/saju"
)

// Palace is an auxiliary pillar with its sound element.
type Palace struct {
	StemBranch saju.StemBranch `json:"stemBranch"`
	Nayin      saju.Nayin      `json:"soundElement"`
}

// Palaces holds the conception (태원), life (명궁) and body (신궁) palaces.
type Palaces struct {
	Conception Palace `json:"conception"`
	Life       Palace `json:"life"`
	Body       Palace `json:"body"`
}

// BuildPalaces parses the raw palace symbols.
func BuildPalaces(raw calendar.RawPalaces) (Palaces, error) {
	var p Palaces
	for _, f := range []struct {
		name string
		sym  string
		dst  *Palace
	}{
		{"conception", raw.Conception, &p.Conception},
		{"life", raw.Life, &p.Life},
		{"body", raw.Body, &p.Body},
	} {
		sb, err := parse(f.name+" palace", f.sym)
		if err != nil {
			return Palaces{}, err
		}
		*f.dst = Palace{StemBranch: sb, Nayin: saju.NayinOf(sb)}
	}
	return p, nil
}
