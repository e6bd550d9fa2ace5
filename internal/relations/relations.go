// Package relations finds the combinations, clashes and punishments among
// the pillars of a chart.
package relations

import (
	"fmt"
	"strings"

	"github.com/f3rmion/saju/internal/saju"
)

// Kind names a relationship type.
type Kind string

const (
	KindStemCombination  Kind = "천간합"
	KindClash            Kind = "충"
	KindGrudge           Kind = "원진"
	KindSixCombination   Kind = "육합"
	KindHarm             Kind = "육해"
	KindBreakage         Kind = "파"
	KindPunishment       Kind = "형"
	KindThreeCombination Kind = "삼합"
	KindHalfCombination  Kind = "반삼합"
	KindDirectional      Kind = "방합"
)

// Relation is one detected relationship.
type Relation struct {
	Kind        Kind            `json:"type"`
	Subtype     string          `json:"subtype,omitempty"`
	Pillars     []saju.Position `json:"pillars"`
	Symbols     string          `json:"elements"`
	Element     *saju.Element   `json:"resultElement,omitempty"`
	Description string          `json:"description"`
}

// Set holds every relationship of a chart, grouped by type.
type Set struct {
	StemCombinations  []Relation `json:"hapList"`
	Clashes           []Relation `json:"chungList"`
	Grudges           []Relation `json:"wonjinList"`
	ThreeCombinations []Relation `json:"samhapList"`
	SixCombinations   []Relation `json:"yukhapList"`
	Directionals      []Relation `json:"banghapList"`
	Punishments       []Relation `json:"hyeongList"`
	Breakages         []Relation `json:"paList"`
	Harms             []Relation `json:"haeList"`
}

// All returns every relationship in a stable order.
func (s Set) All() []Relation {
	var out []Relation
	for _, l := range [][]Relation{
		s.StemCombinations, s.Clashes, s.Grudges, s.ThreeCombinations, s.SixCombinations,
		s.Directionals, s.Punishments, s.Breakages, s.Harms,
	} {
		out = append(out, l...)
	}
	return out
}

// Count returns the number of relationships of kind k.
func (s Set) Count(k Kind) int {
	n := 0
	for _, r := range s.All() {
		if r.Kind == k {
			n++
		}
	}
	return n
}

func newSet() Set {
	return Set{
		StemCombinations:  []Relation{},
		Clashes:           []Relation{},
		Grudges:           []Relation{},
		ThreeCombinations: []Relation{},
		SixCombinations:   []Relation{},
		Directionals:      []Relation{},
		Punishments:       []Relation{},
		Breakages:         []Relation{},
		Harms:             []Relation{},
	}
}

// Detect checks every unordered pillar pair and every branch group. All
// matches are recorded.
func Detect(c saju.Chart) Set {
	s := newSet()
	pillars := c.Pillars()

	for i := 0; i < len(pillars); i++ {
		for j := i + 1; j < len(pillars); j++ {
			detectPair(&s, pillars[i], pillars[j])
		}
	}

	for _, b := range selfPunishing {
		var at []saju.Located
		for _, lp := range pillars {
			if lp.Pillar.Branch() == b {
				at = append(at, lp)
			}
		}
		if len(at) < 2 {
			continue
		}
		labels := make([]string, len(at))
		positions := make([]saju.Position, len(at))
		for i, lp := range at {
			labels[i] = lp.Position.PillarLabel()
			positions[i] = lp.Position
		}
		s.Punishments = append(s.Punishments, Relation{
			Kind:        KindPunishment,
			Subtype:     "자형",
			Pillars:     positions,
			Symbols:     b.String() + b.String(),
			Description: fmt.Sprintf("%s 자형(%s↔%s)", strings.Join(labels, "-"), b, b),
		})
	}

	for _, g := range threeCombinations {
		if r, ok := matchGroup(pillars, g, KindThreeCombination, true); ok {
			s.ThreeCombinations = append(s.ThreeCombinations, r)
		}
	}
	for _, g := range directionals {
		if r, ok := matchGroup(pillars, g, KindDirectional, false); ok {
			s.Directionals = append(s.Directionals, r)
		}
	}
	return s
}

func detectPair(s *Set, a, b saju.Located) {
	as, bs := a.Pillar.Stem(), b.Pillar.Stem()
	ab, bb := a.Pillar.Branch(), b.Pillar.Branch()
	pair := fmt.Sprintf("%s-%s", a.Position.PillarLabel(), b.Position.PillarLabel())
	both := []saju.Position{a.Position, b.Position}

	if e, ok := stemCombination(as, bs); ok {
		s.StemCombinations = append(s.StemCombinations, Relation{
			Kind:        KindStemCombination,
			Pillars:     both,
			Symbols:     as.String() + bs.String(),
			Element:     &e,
			Description: fmt.Sprintf("%s 천간합(%s%s합%s)", pair, as, bs, e),
		})
	}

	arrow := func(kind Kind, list *[]Relation) {
		*list = append(*list, Relation{
			Kind:        kind,
			Pillars:     both,
			Symbols:     ab.String() + bb.String(),
			Description: fmt.Sprintf("%s %s(%s↔%s)", pair, kind, ab, bb),
		})
	}
	if ab.Clash() == bb {
		arrow(KindClash, &s.Clashes)
	}
	if grudgePartner[ab] == bb {
		arrow(KindGrudge, &s.Grudges)
	}
	if e, ok := sixCombination(ab, bb); ok {
		s.SixCombinations = append(s.SixCombinations, Relation{
			Kind:        KindSixCombination,
			Pillars:     both,
			Symbols:     ab.String() + bb.String(),
			Element:     &e,
			Description: fmt.Sprintf("%s 육합(%s%s합%s)", pair, ab, bb, e),
		})
	}

	for _, p := range directedPunishments {
		first, second := a, b
		switch {
		case ab == p.from && bb == p.to:
		case ab == p.to && bb == p.from && p.either:
			first, second = b, a
		default:
			continue
		}
		f, t := first.Pillar.Branch(), second.Pillar.Branch()
		sep := "→"
		if !p.either {
			sep = "↔"
		}
		s.Punishments = append(s.Punishments, Relation{
			Kind:    KindPunishment,
			Subtype: p.name,
			Pillars: []saju.Position{first.Position, second.Position},
			Symbols: f.String() + t.String(),
			Description: fmt.Sprintf("%s-%s %s(%s%s%s)",
				first.Position.PillarLabel(), second.Position.PillarLabel(), p.name, f, sep, t),
		})
	}

	if breakagePartner[ab] == bb {
		arrow(KindBreakage, &s.Breakages)
	}
	if ab.Harm() == bb {
		arrow(KindHarm, &s.Harms)
	}
}

func matchGroup(pillars []saju.Located, g branchGroup, kind Kind, allowHalf bool) (Relation, bool) {
	var found, absent []saju.Branch
	var labels []string
	var positions []saju.Position
	for _, b := range g.members {
		hit := false
		for _, lp := range pillars {
			if lp.Pillar.Branch() == b {
				hit = true
				labels = append(labels, fmt.Sprintf("%s(%s)", lp.Position.PillarLabel(), b))
				positions = append(positions, lp.Position)
			}
		}
		if hit {
			found = append(found, b)
		} else {
			absent = append(absent, b)
		}
	}

	var symbols strings.Builder
	for _, b := range found {
		symbols.WriteString(b.String())
	}
	e := g.element
	r := Relation{
		Kind:    kind,
		Pillars: positions,
		Symbols: symbols.String(),
		Element: &e,
	}

	switch {
	case len(found) == len(g.members):
		r.Description = fmt.Sprintf("%s %s%s", strings.Join(labels, "-"), kind, e)
		return r, true
	case allowHalf && len(found) == 2:
		r.Kind = KindHalfCombination
		r.Description = fmt.Sprintf("%s %s%s(%s 부재)", strings.Join(labels, "-"), KindHalfCombination, e, absent[0])
		return r, true
	default:
		return Relation{}, false
	}
}
