package archetype

import (
	"fmt"

	"github.com/f3rmion/saju/internal/analysis"
	"github.com/f3rmion/saju/internal/markers"
	"github.com/f3rmion/saju/internal/relations"
	"github.com/f3rmion/saju/internal/saju"
)

// Input is everything the classifier reads from a computed chart.
type Input struct {
	Chart     saju.Chart
	Elements  analysis.ElementBalance
	Strength  analysis.StrengthCategory
	Special   markers.Special
	Relations relations.Set
}

// facts are the derived values the rules test.
type facts struct {
	dm        saju.Element
	strength  analysis.StrengthCategory
	peers     int
	expr      int
	wealth    int
	authority int
	resource  int
	elements  analysis.ElementBalance
	special   markers.Special
	clashes   int
	grudges   int
	stemCombs int
}

func factsOf(in Input) facts {
	c := in.Chart.Categories()
	return facts{
		dm:        in.Chart.DayMaster().Element(),
		strength:  in.Strength,
		peers:     c.Get(saju.CategoryPeers),
		expr:      c.Get(saju.CategoryExpressive),
		wealth:    c.Get(saju.CategoryWealth),
		authority: c.Get(saju.CategoryAuthority),
		resource:  c.Get(saju.CategoryResource),
		elements:  in.Elements,
		special:   in.Special,
		clashes:   len(in.Relations.Clashes),
		grudges:   len(in.Relations.Grudges),
		stemCombs: len(in.Relations.StemCombinations),
	}
}

func (f facts) count(e saju.Element) float64 { return f.elements.Counts.Get(e) }
func (f facts) has(m markers.SpecialMarker) bool { return f.special.Has(m) }

// Rule is one step of the classification waterfall.
type Rule struct {
	Name      string
	Phase     int
	Archetype ID
	Reason    string
	when      func(f facts) bool
}

// rules is evaluated in order; the first match wins. The last phase is
// keyed on the day-master element alone, so every chart matches something.
var rules = buildRules()

func buildRules() []Rule {
	rs := []Rule{
		// Phase 1: rare marker combinations.
		{"gate-open", 1, GwiMun, "귀문관살에 영적 감수성이 겹쳤다. 귀신의 문이 열려있는 사주.",
			func(f facts) bool { return f.has(markers.GwiMunGwan) && (f.has(markers.HwaGae) || f.resource >= 3) }},
		{"peach-flood", 1, IkGwi, "도화살에 수 기운이 넘친다. 감정에 빠지면 헤어나오지 못하는 사주.",
			func(f facts) bool { return f.has(markers.DoHwa) && f.count(saju.Water) >= 3 }},

		// Phase 2: ten gods, elements and strength.
		{"fire-expression", 2, GwangIn, "화 기운과 식상이 넘친다. 불꽃처럼 타오르다 스스로를 태우는 사주.",
			func(f facts) bool { return f.count(saju.Fire) >= 3 && f.expr >= 2 }},
		{"restless-weak", 2, HwangCheonGaek, "역마살이 있다. 한 곳에 머물지 못하는 떠돌이 사주.",
			func(f facts) bool {
				return f.has(markers.YeokMa) && (f.strength.IsWeak() || len(f.elements.Missing) > 0)
			}},
		{"heavy-earth-strong", 2, ChipRyong, "토 기운이 두텁고 사주가 강하다. 깊이 잠든 용.",
			func(f facts) bool { return f.count(saju.Earth) >= 4 && f.strength.IsStrong() }},
		{"heavy-earth", 2, GyeonRyeong, "토 기운이 두텁다. 스스로를 가두고 있는 사주.",
			func(f facts) bool { return f.count(saju.Earth) >= 4 }},
		{"expression-flood", 2, SikMae, "식상이 넘쳐난다. 채워도 채워도 배고픈 사주.",
			func(f facts) bool { return f.expr >= 4 }},
		{"authority-strong", 2, MyeongPan, "관성이 강하고 사주도 강하다. 심판하고 통제하려는 기운.",
			func(f facts) bool { return f.authority >= 2 && f.strength.IsStrong() }},
		{"wealth-flood", 2, GalHon, "재성이 넘친다. 아무리 채워도 갈증이 나는 사주.",
			func(f facts) bool { return f.wealth >= 4 }},
		{"resource-flood", 2, YaChokGwi, "인성이 많다. 어둠 속에서 촛불 하나 들고 헤매는 사주.",
			func(f facts) bool { return f.resource >= 3 }},
		{"no-peers-weak", 2, MuMyeonGwi, "비겁이 없고 사주가 약하다. 자기 얼굴을 잃어버린 사주.",
			func(f facts) bool { return f.peers == 0 && f.strength.IsWeak() }},
		{"unbreakable", 2, BulGaSal, "사주가 태강하다. 쓰러져도 다시 일어서는 사주.",
			func(f facts) bool { return f.strength == analysis.VeryStrong || f.peers >= 3 }},
		{"very-weak", 2, CheBaek, "사주가 태약하다. 떠나지 못하고 맴도는 넋.",
			func(f facts) bool { return f.strength == analysis.VeryWeak }},
		{"expression-strong", 2, SikMae, "식상이 넘쳐난다. 강한 사주가 쏟아내기만 하는 격.",
			func(f facts) bool { return f.expr >= 3 && f.strength.IsStrong() }},
		{"expression-weak", 2, CheBaek, "식상이 많은데 사주가 약하다. 기운이 새어나가는 사주.",
			func(f facts) bool { return f.expr >= 3 && f.strength.IsWeak() }},
		{"wealth-strong", 2, ChipRyong, "재성이 넘치고 사주가 강하다. 잠든 용, 아직 때를 기다리는 사주.",
			func(f facts) bool { return f.wealth >= 3 && f.strength.IsStrong() }},
		{"wealth-weak", 2, GalHon, "재성이 넘치는데 사주가 약하다. 손에 잡히지 않는 갈증.",
			func(f facts) bool { return f.wealth >= 3 && f.strength.IsWeak() }},
		{"wealth-authority", 2, JipMae, "재성과 관성이 엉켜있다. 놓지 못하는 집착의 사주.",
			func(f facts) bool { return f.wealth >= 2 && f.authority >= 2 }},
		{"peach", 2, IkGwi, "도화살이 있다. 사람에게 빠지면 헤어나오지 못하는 사주.",
			func(f facts) bool { return f.has(markers.DoHwa) }},
		{"expression-rest", 2, SikMae, "식상이 넘쳐난다. 채워도 채워도 배고픈 사주.",
			func(f facts) bool { return f.expr >= 3 }},
		{"wealth-rest", 2, GalHon, "재성이 넘친다. 아무리 채워도 갈증이 나는 사주.",
			func(f facts) bool { return f.wealth >= 3 }},
		{"earth-strong", 2, ChipRyong, "토 기운 속에 강한 사주. 땅속에 잠든 용의 형상.",
			func(f facts) bool { return f.count(saju.Earth) >= 3 && f.strength.IsStrong() }},
		{"earth", 2, GyeonRyeong, "토 기운이 두텁다. 스스로를 가두고 있는 사주.",
			func(f facts) bool { return f.count(saju.Earth) >= 3 }},
		{"restless", 2, HwangCheonGaek, "역마살이 있다. 떠돌이 기운이 있는 사주.",
			func(f facts) bool { return f.has(markers.YeokMa) }},
		{"fire", 2, GwangIn, "화 기운이 넘치는 사주. 통제 불능의 불꽃.",
			func(f facts) bool { return f.count(saju.Fire) >= 3 }},

		// Phase 3: marker and relationship counts.
		{"clash", 3, HwangCheonGaek, "충이 있다. 안정을 찾지 못하고 흔들리는 사주.",
			func(f facts) bool { return f.clashes >= 1 }},
		{"gate", 3, GwiMun, "귀문관살이 있다. 경계가 열려있는 사주.",
			func(f facts) bool { return f.has(markers.GwiMunGwan) }},
		{"canopy", 3, GwiMun, "화개살이 있다. 영적 감수성이 열려있는 사주.",
			func(f facts) bool { return f.has(markers.HwaGae) }},
		{"grudge", 3, CheBaek, "원진이 있다. 가까운 인연과 어긋나며 맴도는 넋.",
			func(f facts) bool { return f.grudges > 0 }},
		{"combinations", 3, JipMae, "합이 많다. 한 번 잡으면 놓지 못하는 사주.",
			func(f facts) bool { return f.stemCombs >= 2 }},
		{"strong-wealth", 3, ChipRyong, "사주가 강하고 재성이 있다. 잠든 용, 아직 때를 기다리는 사주.",
			func(f facts) bool { return f.strength == analysis.Strong && f.wealth >= 1 }},
		{"peers", 3, BulGaSal, "비겁이 강하다. 쓰러져도 다시 일어서는 사주.",
			func(f facts) bool { return f.peers >= 2 }},
		{"authority", 3, MyeongPan, "관성이 있다. 재고 따지는 심판관의 기운.",
			func(f facts) bool { return f.authority >= 2 }},
		{"expression-weak-plain", 3, SikMae, "식상이 많은데 약한 사주. 안에서부터 갉아먹는다.",
			func(f facts) bool { return f.expr >= 2 && f.strength == analysis.Weak }},
		{"wealth-weak-plain", 3, GalHon, "재성이 보이는데 약한 사주. 닿을 수 없는 갈증.",
			func(f facts) bool { return f.wealth >= 2 && f.strength == analysis.Weak }},
	}
	return append(rs, elementDefaults()...)
}

type elementDefault struct {
	id     ID
	reason string
}

// Phase 4 maps for plainly weak charts and for everything else.
var (
	weakDefaults = [saju.NumElements]elementDefault{
		saju.Wood:  {CheBaek, "약한 목. 뿌리가 얕아 떠나지 못하는 넋."},
		saju.Fire:  {YaChokGwi, "약한 화. 바람에 흔들리는 촛불."},
		saju.Earth: {MuMyeonGwi, "약한 토. 단단하지 못해 얼굴을 잃은 사주."},
		saju.Metal: {GyeonRyeong, "약한 금. 고치 속에 스스로를 가둔 사주."},
		saju.Water: {IkGwi, "약한 수. 깊은 감정에 빠지는 사주."},
	}
	otherDefaults = [saju.NumElements]elementDefault{
		saju.Wood:  {ChipRyong, "강한 목. 잠든 용, 아직 때를 기다리는 사주."},
		saju.Fire:  {GwangIn, "강한 화. 불꽃처럼 타오르는 도깨비불."},
		saju.Earth: {GyeonRyeong, "강한 토. 단단한 고치 속에 갇힌 영혼."},
		saju.Metal: {BulGaSal, "강한 금. 부서져도 다시 단련되는 존재."},
		saju.Water: {GalHon, "강한 수. 깊은 갈증을 품은 사주."},
	}
)

func elementDefaults() []Rule {
	var rs []Rule
	for _, e := range saju.Elements() {
		d := weakDefaults[e]
		rs = append(rs, Rule{"weak-" + e.ID(), 4, d.id, d.reason,
			func(f facts) bool { return f.strength == analysis.Weak && f.dm == e }})
	}
	for _, e := range saju.Elements() {
		d := otherDefaults[e]
		rs = append(rs, Rule{"default-" + e.ID(), 4, d.id, d.reason,
			func(f facts) bool { return f.dm == e }})
	}
	return rs
}

// Rules returns the waterfall in evaluation order.
func Rules() []Rule { return append([]Rule(nil), rules...) }

// match returns the first rule that applies. Running off the end is a
// programming defect.
func match(f facts) Rule {
	for _, r := range rules {
		if r.when(f) {
			return r
		}
	}
	panic(fmt.Sprintf("archetype: no rule matched day-master element %v, strength %v", f.dm, f.strength))
}
