// Package markers detects the special markers (신살), nobleman markers
// (귀인) and void branches (공망) of a chart.
package markers

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/f3rmion/saju/internal/saju"
)

// SpecialMarker is one of the special markers.
type SpecialMarker int

const (
	DoHwa SpecialMarker = iota
	YeokMa
	HwaGae
	BanAn
	YukHae
	HyeonChim
	GwiMunGwan
	JiSal
	YangIn
	GoeGang
	BaekHo
	GeobSal
	CheonRaJiMang
	MangShin
	JangSeong
	GongMangSal
	HongYeom
)

// NumSpecialMarkers is the number of special markers.
const NumSpecialMarkers = 17

var specialIDs = [NumSpecialMarkers]string{
	"doHwa", "yeokMa", "hwaGae", "banAn", "yukHae", "hyeonChim", "gwiMunGwan", "jiSal",
	"yangIn", "goeGang", "baekHo", "geobSal", "cheonRaJiMang", "mangShin", "jangSeong",
	"gongMangSal", "hongYeom",
}

var specialNames = [NumSpecialMarkers]string{
	"도화살", "역마살", "화개살", "반안살", "육해", "현침살", "귀문관살", "지살",
	"양인살", "괴강살", "백호살", "겁살", "천라지망", "망신살", "장성살",
	"공망살", "홍염살",
}

// String returns the hangul name.
func (m SpecialMarker) String() string {
	if m < 0 || m >= NumSpecialMarkers {
		return fmt.Sprintf("SpecialMarker(%d)", int(m))
	}
	return specialNames[m]
}

// ID returns the camel-case identifier.
func (m SpecialMarker) ID() string { return specialIDs[m] }

// MarshalText encodes the marker as its hangul name.
func (m SpecialMarker) MarshalText() ([]byte, error) {
	if m < 0 || m >= NumSpecialMarkers {
		return nil, fmt.Errorf("invalid special marker %d", int(m))
	}
	return []byte(specialNames[m]), nil
}

// UnmarshalText decodes a hangul name.
func (m *SpecialMarker) UnmarshalText(b []byte) error {
	for i, n := range specialNames {
		if string(b) == n {
			*m = SpecialMarker(i)
			return nil
		}
	}
	return fmt.Errorf("unknown special marker %q", string(b))
}

// SpecialFlags records which markers were found.
type SpecialFlags [NumSpecialMarkers]bool

// MarshalJSON emits an object keyed by marker id.
func (f SpecialFlags) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, NumSpecialMarkers)
	for i, id := range specialIDs {
		m[id] = f[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON reverses MarshalJSON.
func (f *SpecialFlags) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for i, id := range specialIDs {
		f[i] = m[id]
	}
	return nil
}

// SpecialHit is one detected marker and the pillars carrying it.
type SpecialHit struct {
	Marker  SpecialMarker   `json:"marker"`
	Pillars []saju.Position `json:"pillars"`
}

// Special is the result of the special-marker scan.
type Special struct {
	Flags    SpecialFlags                  `json:"flags"`
	Hits     []SpecialHit                  `json:"hits"`
	ByPillar saju.PerPillar[SpecialMarker] `json:"byPillar"`
	Details  []string                      `json:"details"`
}

// Has reports whether m was found.
func (s Special) Has(m SpecialMarker) bool { return s.Flags[m] }

// Count returns the number of distinct markers found.
func (s Special) Count() int { return len(s.Hits) }

func (s *Special) mark(m SpecialMarker, p saju.Position) {
	s.Flags[m] = true
	if !slices.Contains(s.ByPillar[p], m) {
		s.ByPillar.Add(p, m)
	}
	for i := range s.Hits {
		if s.Hits[i].Marker == m {
			if !slices.Contains(s.Hits[i].Pillars, p) {
				s.Hits[i].Pillars = append(s.Hits[i].Pillars, p)
				slices.Sort(s.Hits[i].Pillars)
			}
			return
		}
	}
	s.Hits = append(s.Hits, SpecialHit{Marker: m, Pillars: []saju.Position{p}})
}

func (s *Special) detail(format string, args ...any) {
	s.Details = append(s.Details, fmt.Sprintf(format, args...))
}

// DetectSpecial scans the chart for every special marker. The void result
// feeds the 공망살 marker.
func DetectSpecial(c saju.Chart, void Void) Special {
	s := Special{Hits: []SpecialHit{}, Details: []string{}}
	all := c.Pillars()
	day := c.Day.StemBranch
	yearBranch := c.Year.Branch()

	except := func(skip saju.Position) []saju.Located {
		out := make([]saju.Located, 0, len(all))
		for _, lp := range all {
			if lp.Position != skip {
				out = append(out, lp)
			}
		}
		return out
	}
	nonDay := except(saju.PositionDay)
	nonYear := except(saju.PositionYear)

	scan := func(m SpecialMarker, pillars []saju.Located, target saju.Branch) {
		for _, lp := range pillars {
			if lp.Pillar.Branch() == target {
				s.mark(m, lp.Position)
				s.detail("%s %s(%s)", lp.Position.BranchLabel(), m, target)
			}
		}
	}

	scan(DoHwa, nonDay, doHwaTable.of(day.Branch))
	scan(YeokMa, nonDay, yeokMaTable.of(day.Branch))
	scan(HwaGae, nonDay, hwaGaeTable.of(day.Branch))
	scan(BanAn, nonDay, banAnTable.of(day.Branch))

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.Pillar.Branch().Harm() == b.Pillar.Branch() {
				s.mark(YukHae, a.Position)
				s.mark(YukHae, b.Position)
				s.detail("%s-%s %s(%s↔%s)", a.Position.BranchLabel(), b.Position.BranchLabel(),
					YukHae, a.Pillar.Branch(), b.Pillar.Branch())
			}
		}
	}

	for _, lp := range all {
		if hyeonChimBranches[lp.Pillar.Branch()] {
			s.mark(HyeonChim, lp.Position)
			s.detail("%s %s(%s)", lp.Position.BranchLabel(), HyeonChim, lp.Pillar.Branch())
		}
	}

	scan(GwiMunGwan, nonDay, gwiMunPartner[day.Branch])
	scan(JiSal, nonYear, jiSalTable.of(yearBranch))

	if target := yangInTable[day.Stem]; target != nil {
		scan(YangIn, all, *target)
	}

	if slices.Contains(goeGangDays, day) {
		s.mark(GoeGang, saju.PositionDay)
		s.detail("일주 %s(%s)", GoeGang, day)
	}

	scan(BaekHo, nonDay, baekHoTable.of(day.Branch))
	scan(GeobSal, nonYear, geobSalTable.of(yearBranch))

	present := func(b saju.Branch) bool {
		return slices.ContainsFunc(all, func(lp saju.Located) bool { return lp.Pillar.Branch() == b })
	}
	net := func(label string, x, y saju.Branch) {
		if !present(x) || !present(y) {
			return
		}
		s.detail("%s(%s+%s 동시 존재)", label, x, y)
		for _, lp := range all {
			if b := lp.Pillar.Branch(); b == x || b == y {
				s.mark(CheonRaJiMang, lp.Position)
			}
		}
	}
	net("천라", saju.BranchJin, saju.BranchSul)
	net("지망", saju.BranchSa, saju.BranchHae)

	scan(MangShin, nonYear, mangShinTable.of(yearBranch))
	scan(JangSeong, nonYear, jangSeongTable.of(yearBranch))

	for _, p := range void.Affected {
		s.mark(GongMangSal, p)
		s.detail("%s %s", p.PillarLabel(), GongMangSal)
	}

	scan(HongYeom, all, hongYeomTable[day.Stem])

	return s
}
