package analysis

import (
	"fmt"
	"math"

	"github.com/f3rmion/saju/internal/saju"
)

// StrengthCategory buckets the strength score.
type StrengthCategory int

const (
	VeryStrong StrengthCategory = iota // 태강
	Strong                             // 강
	Balanced                           // 중화
	Weak                               // 약
	VeryWeak                           // 태약
)

const numStrengthCategories = 5

var strengthNames = [numStrengthCategories]string{"태강", "강", "중화", "약", "태약"}

// Score thresholds, checked from the top.
const (
	veryStrongMin = 70
	strongMin     = 55
	balancedMin   = 45
	weakMin       = 30

	seasonalBonus = 10
	neutralScore  = 50
	maxScore      = 100
)

// String returns the hangul name.
func (s StrengthCategory) String() string {
	if s < 0 || s >= numStrengthCategories {
		return fmt.Sprintf("StrengthCategory(%d)", int(s))
	}
	return strengthNames[s]
}

// IsStrong reports 강 or 태강.
func (s StrengthCategory) IsStrong() bool { return s == Strong || s == VeryStrong }

// IsWeak reports 약 or 태약.
func (s StrengthCategory) IsWeak() bool { return s == Weak || s == VeryWeak }

// IsExtreme reports 태강 or 태약.
func (s StrengthCategory) IsExtreme() bool { return s == VeryStrong || s == VeryWeak }

// MarshalText encodes the category as its hangul name.
func (s StrengthCategory) MarshalText() ([]byte, error) {
	if s < 0 || s >= numStrengthCategories {
		return nil, fmt.Errorf("invalid strength category %d", int(s))
	}
	return []byte(strengthNames[s]), nil
}

// UnmarshalText decodes a hangul name.
func (s *StrengthCategory) UnmarshalText(b []byte) error {
	for i, n := range strengthNames {
		if string(b) == n {
			*s = StrengthCategory(i)
			return nil
		}
	}
	return fmt.Errorf("unknown strength category %q", string(b))
}

// CategoryOf buckets a score.
func CategoryOf(score int) StrengthCategory {
	switch {
	case score >= veryStrongMin:
		return VeryStrong
	case score >= strongMin:
		return Strong
	case score >= balancedMin:
		return Balanced
	case score >= weakMin:
		return Weak
	default:
		return VeryWeak
	}
}

// Strength is the day-master strength assessment.
type Strength struct {
	Score             int                 `json:"score"`
	Category          StrengthCategory    `json:"category"`
	SeasonalElement   saju.Element        `json:"seasonalElement"`
	SeasonalDominance bool                `json:"seasonalDominance"`
	Counts            saju.CategoryCounts `json:"categoryCounts"`
}

// SeasonOf returns the seasonal element of a month branch. The four tomb
// branches belong to earth.
func SeasonOf(b saju.Branch) saju.Element {
	switch b {
	case saju.BranchIn, saju.BranchMyo:
		return saju.Wood
	case saju.BranchSa, saju.BranchO:
		return saju.Fire
	case saju.BranchSin, saju.BranchYu:
		return saju.Metal
	case saju.BranchHae, saju.BranchJa:
		return saju.Water
	default:
		return saju.Earth
	}
}

// AnalyzeStrength scores the share of self-supporting ten gods and adds a
// bonus when the month season feeds the day-master.
func AnalyzeStrength(c saju.Chart) Strength {
	counts := c.Categories()
	dm := c.DayMaster().Element()
	season := SeasonOf(c.Month.Branch())
	dominant := season == dm || season.Produces() == dm

	score := neutralScore
	if total := counts.Total(); total > 0 {
		score = int(math.Round(float64(counts.SelfSupporting()) / float64(total) * 100))
		if dominant {
			score += seasonalBonus
		}
		if score > maxScore {
			score = maxScore
		}
	}

	return Strength{
		Score:             score,
		Category:          CategoryOf(score),
		SeasonalElement:   season,
		SeasonalDominance: dominant,
		Counts:            counts,
	}
}

// Favorable names the elements that help and hurt the day-master.
type Favorable struct {
	Primary     saju.Element `json:"primary"`
	Secondary   saju.Element `json:"secondary"`
	Unfavorable saju.Element `json:"unfavorable"`
}

// ResolveFavorable picks favorable elements from the day-master element and
// its strength. A strong day-master wants to be drained and checked; any
// other wants to be fed and reinforced.
func ResolveFavorable(dm saju.Element, s StrengthCategory) Favorable {
	if s.IsStrong() {
		return Favorable{
			Primary:     dm.Produces(),
			Secondary:   dm.ControlledBy(),
			Unfavorable: dm.ProducedBy(),
		}
	}
	return Favorable{
		Primary:     dm.ProducedBy(),
		Secondary:   dm,
		Unfavorable: dm.ControlledBy(),
	}
}
