package markers

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/f3rmion/saju/internal/saju"
)

// NoblemanMarker is one of the nobleman markers.
type NoblemanMarker int

const (
	CheonEul NoblemanMarker = iota
	TaeGeuk
	WolDeok
	CheonDeok
	MunChang
	HakDang
	CheonGwan
	GeumYeo
)

// NumNoblemanMarkers is the number of nobleman markers.
const NumNoblemanMarkers = 8

var noblemanIDs = [NumNoblemanMarkers]string{
	"cheonUl", "taeGeuk", "wolDeok", "cheonDeok", "munChang", "hakDang", "cheongWan", "geumYeo",
}

var noblemanNames = [NumNoblemanMarkers]string{
	"천을귀인", "태극귀인", "월덕귀인", "천덕귀인", "문창귀인", "학당귀인", "천관귀인", "금여귀인",
}

func (m NoblemanMarker) String() string {
	if m < 0 || m >= NumNoblemanMarkers {
		return fmt.Sprintf("NoblemanMarker(%d)", int(m))
	}
	return noblemanNames[m]
}

func (m NoblemanMarker) ID() string { return noblemanIDs[m] }

func (m NoblemanMarker) MarshalText() ([]byte, error) {
	if m < 0 || m >= NumNoblemanMarkers {
		return nil, fmt.Errorf("invalid nobleman marker %d", int(m))
	}
	return []byte(noblemanNames[m]), nil
}

func (m *NoblemanMarker) UnmarshalText(b []byte) error {
	for i, n := range noblemanNames {
		if string(b) == n {
			*m = NoblemanMarker(i)
			return nil
		}
	}
	return fmt.Errorf("unknown nobleman marker %q", string(b))
}

// Sighting is a pillar carrying a nobleman marker and the symbol that
// matched there.
type Sighting struct {
	Position saju.Position `json:"position"`
	Symbol   string        `json:"symbol"`
}

// String formats the sighting as "년주(자)".
func (s Sighting) String() string {
	return fmt.Sprintf("%s(%s)", s.Position.PillarLabel(), s.Symbol)
}

// MarshalJSON adds the formatted label.
func (s Sighting) MarshalJSON() ([]byte, error) {
	type plain Sighting
	return json.Marshal(struct {
		plain
		Label string `json:"label"`
	}{plain(s), s.String()})
}

// NoblemanHit is a marker present in at least one pillar.
type NoblemanHit struct {
	Marker    NoblemanMarker `json:"marker"`
	Sightings []Sighting     `json:"sightings"`
}

// Nobleman is the result of the nobleman scan. ByPeriod lists the markers
// of each pillar, which stands for a period of life.
type Nobleman struct {
	Hits     []NoblemanHit                  `json:"hits"`
	ByPeriod saju.PerPillar[NoblemanMarker] `json:"byPeriod"`
}

// Has reports whether m was found.
func (n Nobleman) Has(m NoblemanMarker) bool {
	return slices.ContainsFunc(n.Hits, func(h NoblemanHit) bool { return h.Marker == m })
}

// Count returns the number of distinct markers found.
func (n Nobleman) Count() int { return len(n.Hits) }

type noblemanRule struct {
	marker NoblemanMarker
	match  func(sb saju.StemBranch) (string, bool)
}

func branchIn(targets ...saju.Branch) func(saju.StemBranch) (string, bool) {
	return func(sb saju.StemBranch) (string, bool) {
		return sb.Branch.String(), slices.Contains(targets, sb.Branch)
	}
}

func noblemanRules(c saju.Chart) []noblemanRule {
	dm := c.DayMaster()
	month := c.Month.Branch()
	wolDeok := wolDeokTable[groupOf(month)]
	cheonDeok := cheonDeokTable[month]

	return []noblemanRule{
		{CheonEul, branchIn(cheonEulTable[dm]...)},
		{TaeGeuk, branchIn(taeGeukTable[dm]...)},
		{WolDeok, func(sb saju.StemBranch) (string, bool) {
			return sb.Stem.String(), sb.Stem == wolDeok
		}},
		{CheonDeok, func(sb saju.StemBranch) (string, bool) {
			return cheonDeok.String(), cheonDeok.matches(sb)
		}},
		{MunChang, branchIn(munChangTable[dm])},
		{HakDang, branchIn(hakDangTable[dm])},
		{CheonGwan, branchIn(cheonGwanTable[dm])},
		{GeumYeo, branchIn(geumYeoTable[dm])},
	}
}

// DetectNobleman scans every present pillar, the day pillar included, for
// the nobleman markers.
func DetectNobleman(c saju.Chart) Nobleman {
	n := Nobleman{Hits: []NoblemanHit{}}
	rules := noblemanRules(c)
	for _, r := range rules {
		var sightings []Sighting
		for _, lp := range c.Pillars() {
			if sym, ok := r.match(lp.Pillar.StemBranch); ok {
				sightings = append(sightings, Sighting{Position: lp.Position, Symbol: sym})
			}
		}
		if len(sightings) > 0 {
			n.Hits = append(n.Hits, NoblemanHit{Marker: r.marker, Sightings: sightings})
		}
	}
	for _, lp := range c.Pillars() {
		for _, r := range rules {
			if _, ok := r.match(lp.Pillar.StemBranch); ok {
				n.ByPeriod.Add(lp.Position, r.marker)
			}
		}
	}
	return n
}
