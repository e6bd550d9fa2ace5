// Package structure classifies the chart's structure (격국) from the month
// branch and the balance of ten-god families.
package structure

import (
	"fmt"

	"github.com/f3rmion/saju/internal/saju"
)

// Structure is a structure name.
type Structure string

const (
	CareerRoot       Structure = "건록격"
	Blade            Structure = "양인격"
	EatingGod        Structure = "식신격"
	HurtingOfficer   Structure = "상관격"
	IndirectWealth   Structure = "편재격"
	DirectWealth     Structure = "정재격"
	SevenKillings    Structure = "편관격"
	DirectOfficer    Structure = "정관격"
	IndirectResource Structure = "편인격"
	DirectResource   Structure = "정인격"
	FollowStrength   Structure = "종강격"
	FollowOutput     Structure = "종아격"
	FollowWealth     Structure = "종재격"
	FollowAuthority  Structure = "종관격"
	FollowTrend      Structure = "종세격"
	Unclassifiable   Structure = "판정불가"
)

// Category groups structures.
type Category string

const (
	CategoryOrdinary  Category = "내격"
	CategorySpecial   Category = "특수격"
	CategoryFollowing Category = "종격"
	CategoryOther     Category = "기타"
)

// Override thresholds.
const (
	dominantShare = 0.8
	majorityShare = 0.6
)

// Result is the structure classification.
type Result struct {
	Structure     Structure   `json:"structure"`
	Category      Category    `json:"category"`
	MonthMainStem saju.Stem   `json:"monthMainStem"`
	MonthTenGod   saju.TenGod `json:"monthTenGod"`
	Description   string      `json:"description"`
}

// Ten gods without an ordinary structure hold the empty name.
var ordinary = [saju.NumTenGods]Structure{
	saju.EatingGod:        EatingGod,
	saju.HurtingOfficer:   HurtingOfficer,
	saju.IndirectWealth:   IndirectWealth,
	saju.DirectWealth:     DirectWealth,
	saju.SevenKillings:    SevenKillings,
	saju.DirectOfficer:    DirectOfficer,
	saju.IndirectResource: IndirectResource,
	saju.DirectResource:   DirectResource,
}

// Classify reads the structure from the ten god of the month branch's main
// hidden stem, then lets an extreme family balance override it.
func Classify(c saju.Chart) Result {
	dm := c.DayMaster()
	main := c.Month.Branch().MainStem()
	god := saju.TenGodOf(dm, main)

	r := Result{MonthMainStem: main, MonthTenGod: god}
	switch god {
	case saju.Companion:
		r.Structure, r.Category = CareerRoot, CategorySpecial
		r.Description = fmt.Sprintf("월지 정기(%s)가 비견 → 건록격. 자수성가의 격.", main)
	case saju.RobWealth:
		r.Structure, r.Category = Blade, CategorySpecial
		r.Description = fmt.Sprintf("월지 정기(%s)가 겁재 → 양인격. 강인하지만 극단적인 격.", main)
	default:
		s := ordinary[god]
		if s == "" {
			r.Structure, r.Category = Unclassifiable, CategoryOther
			r.Description = "격국 판정 불가."
			break
		}
		r.Structure, r.Category = s, CategoryOrdinary
		r.Description = fmt.Sprintf("월지 정기(%s)의 십신이 %s → %s.", main, god, s)
	}

	if s, desc, ok := following(c); ok {
		r.Structure, r.Category, r.Description = s, CategoryFollowing, desc
	}
	return r
}

// following checks the submission structures in order. Only 종강격 is
// allowed while the day-master has a root.
func following(c saju.Chart) (Structure, string, bool) {
	counts := c.Categories()
	total := counts.Total()
	if total == 0 {
		return "", "", false
	}
	share := func(n int) float64 { return float64(n) / float64(total) }

	peers := counts.Get(saju.CategoryPeers)
	expressive := counts.Get(saju.CategoryExpressive)
	wealth := counts.Get(saju.CategoryWealth)
	authority := counts.Get(saju.CategoryAuthority)
	resource := counts.Get(saju.CategoryResource)

	if share(counts.SelfSupporting()) >= dominantShare && wealth == 0 && authority == 0 {
		return FollowStrength, "비겁/인성이 압도적. 자기 오행에 종(從)하는 격.", true
	}
	if HasRoot(c) {
		return "", "", false
	}

	switch {
	case share(expressive) >= majorityShare && resource == 0:
		return FollowOutput, "식상이 압도적이고 일간 무근. 표현/재능에 종하는 격.", true
	case share(wealth) >= majorityShare && peers == 0:
		return FollowWealth, "재성이 압도적이고 일간 무근. 재물에 종하는 격.", true
	case share(authority) >= majorityShare && expressive == 0:
		return FollowAuthority, "관성이 압도적이고 일간 무근. 권위/규율에 종하는 격.", true
	case share(counts.Draining()) >= dominantShare && peers == 0:
		return FollowTrend, "설기 세력이 압도적이고 일간 무근. 시세에 따르는 격.", true
	}
	return "", "", false
}

// HasRoot reports whether any hidden stem of the chart shares the
// day-master's element.
func HasRoot(c saju.Chart) bool {
	e := c.DayMaster().Element()
	for _, lp := range c.Pillars() {
		for _, h := range lp.Pillar.HiddenStems {
			if h.Element() == e {
				return true
			}
		}
	}
	return false
}
