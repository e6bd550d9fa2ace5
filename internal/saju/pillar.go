package saju

import (
	"encoding/json"
	"fmt"
)

// Position identifies a pillar within the chart.
type Position int

const (
	PositionYear Position = iota
	PositionMonth
	PositionDay
	PositionHour
)

// NumPositions is the number of pillar slots.
const NumPositions = 4

var positionIDs = [NumPositions]string{"year", "month", "day", "hour"}
var positionPillarLabels = [NumPositions]string{"년주", "월주", "일주", "시주"}
var positionBranchLabels = [NumPositions]string{"년지", "월지", "일지", "시지"}
var positionPeriods = [NumPositions]string{"초년", "청년", "중년", "말년"}

// String returns the english identifier.
func (p Position) String() string {
	if p < 0 || p >= NumPositions {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionIDs[p]
}

// PillarLabel returns the hangul pillar name, e.g. "년주".
func (p Position) PillarLabel() string { return positionPillarLabels[p] }

// BranchLabel returns the hangul branch-slot name, e.g. "년지".
func (p Position) BranchLabel() string { return positionBranchLabels[p] }

// LifePeriod returns the life period the pillar governs, e.g. "초년".
func (p Position) LifePeriod() string { return positionPeriods[p] }

// MarshalText encodes the position as its english identifier.
func (p Position) MarshalText() ([]byte, error) {
	if p < 0 || p >= NumPositions {
		return nil, fmt.Errorf("invalid position %d", int(p))
	}
	return []byte(positionIDs[p]), nil
}

// UnmarshalText decodes an english identifier.
func (p *Position) UnmarshalText(b []byte) error {
	for i, id := range positionIDs {
		if string(b) == id {
			*p = Position(i)
			return nil
		}
	}
	return fmt.Errorf("unknown position %q", string(b))
}

// Pillar is one stem-branch pair of the chart with everything derived from
// it relative to the day-master.
type Pillar struct {
	StemBranch    StemBranch  `json:"stemBranch"`
	StemTenGod    TenGod      `json:"stemTenGod"`
	HiddenStems   []Stem      `json:"hiddenStems"`
	HiddenTenGods []TenGod    `json:"hiddenTenGods"`
	Stage         TwelveStage `json:"twelveStage"`
	Nayin         Nayin       `json:"soundElement"`
}

// NewPillar derives a pillar from its stem-branch pair and the day-master.
// The day pillar passes isDay so that its stem carries the day-master label.
func NewPillar(sb StemBranch, dm Stem, isDay bool) Pillar {
	hidden := sb.Branch.HiddenStems()
	gods := make([]TenGod, len(hidden))
	for i, h := range hidden {
		gods[i] = TenGodOf(dm, h)
	}
	stemGod := TenGodDayMaster
	if !isDay {
		stemGod = TenGodOf(dm, sb.Stem)
	}
	return Pillar{
		StemBranch:    sb,
		StemTenGod:    stemGod,
		HiddenStems:   hidden,
		HiddenTenGods: gods,
		Stage:         StageOf(dm, sb.Branch),
		Nayin:         NayinOf(sb),
	}
}

// Stem returns the pillar's stem.
func (p Pillar) Stem() Stem { return p.StemBranch.Stem }

// Branch returns the pillar's branch.
func (p Pillar) Branch() Branch { return p.StemBranch.Branch }

// Chart is the set of three or four pillars. Hour is nil when the birth
// time is unknown.
type Chart struct {
	Year  Pillar  `json:"year"`
	Month Pillar  `json:"month"`
	Day   Pillar  `json:"day"`
	Hour  *Pillar `json:"hour,omitempty"`
}

// NewChart derives a chart from raw stem-branch pairs. A nil hour yields a
// three-pillar chart.
func NewChart(year, month, day StemBranch, hour *StemBranch) Chart {
	dm := day.Stem
	c := Chart{
		Year:  NewPillar(year, dm, false),
		Month: NewPillar(month, dm, false),
		Day:   NewPillar(day, dm, true),
	}
	if hour != nil {
		h := NewPillar(*hour, dm, false)
		c.Hour = &h
	}
	return c
}

// DayMaster returns the day stem.
func (c Chart) DayMaster() Stem { return c.Day.Stem() }

// HasHour reports whether the hour pillar is present.
func (c Chart) HasHour() bool { return c.Hour != nil }

// Located pairs a pillar with its position.
type Located struct {
	Position Position
	Pillar   Pillar
}

// Pillars returns the present pillars in position order.
func (c Chart) Pillars() []Located {
	out := []Located{
		{PositionYear, c.Year},
		{PositionMonth, c.Month},
		{PositionDay, c.Day},
	}
	if c.Hour != nil {
		out = append(out, Located{PositionHour, *c.Hour})
	}
	return out
}

// Categories tallies ten-god families over every stem and hidden stem,
// leaving out the day-master itself.
func (c Chart) Categories() CategoryCounts {
	var counts CategoryCounts
	for _, lp := range c.Pillars() {
		counts[lp.Pillar.StemTenGod.Category()]++
		for _, g := range lp.Pillar.HiddenTenGods {
			counts[g.Category()]++
		}
	}
	counts[CategoryNone] = 0
	return counts
}

// HiddenStemCount returns the number of hidden stems across present pillars.
func (c Chart) HiddenStemCount() int {
	n := 0
	for _, lp := range c.Pillars() {
		n += len(lp.Pillar.HiddenStems)
	}
	return n
}

// PerPillar holds one list per position. It serializes to an object keyed by
// position, and the hour key is left out when its list is empty.
type PerPillar[T any] [NumPositions][]T

// Add appends v to the list of position p.
func (pp *PerPillar[T]) Add(p Position, v T) {
	pp[p] = append(pp[p], v)
}

// At returns the list of position p.
func (pp PerPillar[T]) At(p Position) []T { return pp[p] }

type perPillarJSON[T any] struct {
	Year  []T `json:"year"`
	Month []T `json:"month"`
	Day   []T `json:"day"`
	Hour  []T `json:"hour,omitempty"`
}

// MarshalJSON emits year, month and day as arrays (never null) and hour only
// when it has entries.
func (pp PerPillar[T]) MarshalJSON() ([]byte, error) {
	nonNil := func(v []T) []T {
		if v == nil {
			return []T{}
		}
		return v
	}
	return json.Marshal(perPillarJSON[T]{
		Year:  nonNil(pp[PositionYear]),
		Month: nonNil(pp[PositionMonth]),
		Day:   nonNil(pp[PositionDay]),
		Hour:  pp[PositionHour],
	})
}

// UnmarshalJSON reverses MarshalJSON.
func (pp *PerPillar[T]) UnmarshalJSON(b []byte) error {
	var v perPillarJSON[T]
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*pp = PerPillar[T]{v.Year, v.Month, v.Day, v.Hour}
	return nil
}
