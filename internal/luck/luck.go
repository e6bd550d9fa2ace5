// Package luck builds the ten-year luck cycle (대운) and its yearly
// entries (세운) from the calendar library's output.
package luck

import (
	"fmt"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/saju"
)

// Direction is the way the luck cycle moves through the sexagenary cycle.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Step is +1 for Forward and -1 for Backward.
func (d Direction) Step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// String returns the hangul name.
func (d Direction) String() string {
	if d == Backward {
		return "역행"
	}
	return "순행"
}

// MarshalText encodes the direction as "forward" or "backward".
func (d Direction) MarshalText() ([]byte, error) {
	if d == Backward {
		return []byte("backward"), nil
	}
	return []byte("forward"), nil
}

// UnmarshalText decodes "forward" or "backward".
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction %q", string(b))
	}
	return nil
}

// DirectionOf runs forward for a yang year with a male chart or a yin year
// with a female chart, and backward otherwise.
func DirectionOf(g saju.Gender, yearStem saju.Stem) Direction {
	yang := yearStem.Polarity() == saju.Yang
	if (g == saju.Male) == yang {
		return Forward
	}
	return Backward
}

// Year is one year of a luck period.
type Year struct {
	Year       int             `json:"year"`
	Age        int             `json:"age"`
	StemBranch saju.StemBranch `json:"stemBranch"`
}

// Period is one ten-year luck period.
type Period struct {
	StartAge   int             `json:"startAge"`
	EndAge     int             `json:"endAge"`
	StartYear  int             `json:"startYear"`
	EndYear    int             `json:"endYear"`
	StemBranch saju.StemBranch `json:"stemBranch"`
	Years      []Year          `json:"years"`
}

// Cycle is the full luck cycle.
type Cycle struct {
	Direction Direction `json:"direction"`
	StartAge  int       `json:"startAge"`
	Periods   []Period  `json:"periods"`
}

// Current returns the period covering the given age, if any.
func (c Cycle) Current(age int) (Period, bool) {
	for _, p := range c.Periods {
		if age >= p.StartAge && age <= p.EndAge {
			return p, true
		}
	}
	return Period{}, false
}

// Build converts and checks the raw luck periods. The direction computed
// from gender and year stem must agree with the library, and every period
// must step once through the cycle from its predecessor, the first one from
// the month pillar.
func Build(c saju.Chart, g saju.Gender, raw calendar.RawLuck) (Cycle, error) {
	dir := DirectionOf(g, c.Year.Stem())
	if raw.Forward != (dir == Forward) {
		return Cycle{}, failure("library direction forward=%t, want %s", raw.Forward, dir)
	}

	cycle := Cycle{Direction: dir, StartAge: raw.StartAge, Periods: make([]Period, 0, len(raw.Periods))}
	prev := c.Month.StemBranch
	for i, rp := range raw.Periods {
		sb, err := saju.ParseStemBranch(rp.StemBranch)
		if err != nil {
			return Cycle{}, failure("period %d: %v", i, err)
		}
		if want := prev.Step(dir.Step()); sb != want {
			return Cycle{}, failure("period %d is %s, want %s", i, sb, want)
		}
		if rp.EndAge < rp.StartAge || rp.EndYear < rp.StartYear {
			return Cycle{}, failure("period %d has an inverted range", i)
		}
		if i > 0 {
			last := cycle.Periods[i-1]
			if rp.StartAge <= last.StartAge || rp.StartYear <= last.StartYear {
				return Cycle{}, failure("period %d does not advance", i)
			}
		}

		p := Period{
			StartAge:   rp.StartAge,
			EndAge:     rp.EndAge,
			StartYear:  rp.StartYear,
			EndYear:    rp.EndYear,
			StemBranch: sb,
			Years:      make([]Year, 0, len(rp.Years)),
		}
		for j, ry := range rp.Years {
			ysb, err := saju.ParseStemBranch(ry.StemBranch)
			if err != nil {
				return Cycle{}, failure("period %d year %d: %v", i, j, err)
			}
			if j > 0 {
				last := p.Years[j-1]
				if ry.Year <= last.Year || ry.Age <= last.Age || ysb != last.StemBranch.Step(ry.Year-last.Year) {
					return Cycle{}, failure("period %d year %d does not follow %d", i, ry.Year, last.Year)
				}
			}
			p.Years = append(p.Years, Year{Year: ry.Year, Age: ry.Age, StemBranch: ysb})
		}

		cycle.Periods = append(cycle.Periods, p)
		prev = sb
	}
	return cycle, nil
}

func failure(format string, args ...any) error {
	return &saju.OpError{
		Op:   "build luck cycle",
		Kind: saju.KindAdapterFailure,
		Err:  fmt.Errorf("%w: "+format, append([]any{saju.ErrAdapterFailure}, args...)...),
	}
}
