package markers

import (
	"fmt"

	"github.com/f3rmion/saju/internal/saju"
)

// decadeLength is the number of pairs in one decade (순) of the cycle.
const decadeLength = 10

// Void holds the two branches the day pillar's decade skips (공망) and the
// pillars that sit on them.
type Void struct {
	Branches [2]saju.Branch `json:"branches"`
	Affected []saju.Position `json:"affectedPillars"`
	Details  []string        `json:"details"`
}

// Has reports whether b is one of the void branches.
func (v Void) Has(b saju.Branch) bool {
	return b == v.Branches[0] || b == v.Branches[1]
}

// Affects reports whether the pillar at p sits on a void branch.
func (v Void) Affects(p saju.Position) bool {
	for _, a := range v.Affected {
		if a == p {
			return true
		}
	}
	return false
}

// VoidOf finds the void branches of the day pillar. The day pillar itself
// defines the decade and is never flagged.
func VoidOf(c saju.Chart) Void {
	day := c.Day.StemBranch
	start := saju.Branch(0).Add(int(day.Branch) - int(day.Stem))

	v := Void{
		Branches: [2]saju.Branch{start.Add(decadeLength), start.Add(decadeLength + 1)},
		Affected: []saju.Position{},
	}
	if v.Branches[1] < v.Branches[0] {
		v.Branches[0], v.Branches[1] = v.Branches[1], v.Branches[0]
	}

	for _, lp := range c.Pillars() {
		if lp.Position == saju.PositionDay {
			continue
		}
		b := lp.Pillar.Branch()
		if v.Has(b) {
			v.Affected = append(v.Affected, lp.Position)
			v.Details = append(v.Details, fmt.Sprintf("%s(%s) 공망", lp.Position.PillarLabel(), b))
		}
	}
	if len(v.Details) == 0 {
		v.Details = []string{fmt.Sprintf("공망 지지: %s, %s (4기둥에 해당 없음)", v.Branches[0], v.Branches[1])}
	}
	return v
}
