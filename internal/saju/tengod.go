package saju

import "fmt"

// TenGod is the relation of a stem to the day-master (십신).
type TenGod int

const (
	// TenGodDayMaster labels the day stem itself. It belongs to no category
	// and is skipped by every count.
	TenGodDayMaster TenGod = iota
	Companion              // 비견
	RobWealth              // 겁재
	EatingGod              // 식신
	HurtingOfficer         // 상관
	IndirectWealth         // 편재
	DirectWealth           // 정재
	SevenKillings          // 편관
	DirectOfficer          // 정관
	IndirectResource       // 편인
	DirectResource         // 정인
)

// NumTenGods counts the ten gods plus the day-master label.
const NumTenGods = 11

var tenGodNames = [NumTenGods]string{"일주", "비견", "겁재", "식신", "상관", "편재", "정재", "편관", "정관", "편인", "정인"}

// Category groups ten gods into the five classical families.
type Category int

const (
	CategoryNone       Category = iota
	CategoryPeers               // 비겁
	CategoryExpressive          // 식상
	CategoryWealth              // 재성
	CategoryAuthority           // 관성
	CategoryResource            // 인성
)

// NumCategories counts the categories including CategoryNone.
const NumCategories = 6

var categoryNames = [NumCategories]string{"", "비겁", "식상", "재성", "관성", "인성"}
var categoryIDs = [NumCategories]string{"none", "peers", "expressive", "wealth", "authority", "resource"}

var tenGodCategory = [NumTenGods]Category{
	CategoryNone,
	CategoryPeers, CategoryPeers,
	CategoryExpressive, CategoryExpressive,
	CategoryWealth, CategoryWealth,
	CategoryAuthority, CategoryAuthority,
	CategoryResource, CategoryResource,
}

// TenGodOf returns the relation of other to the day-master dm. Same
// polarity yields the "indirect" member of each pair.
func TenGodOf(dm, other Stem) TenGod {
	same := dm.Polarity() == other.Polarity()
	pick := func(samePol, diffPol TenGod) TenGod {
		if same {
			return samePol
		}
		return diffPol
	}

	de, oe := dm.Element(), other.Element()
	switch oe {
	case de:
		return pick(Companion, RobWealth)
	case de.Produces():
		return pick(EatingGod, HurtingOfficer)
	case de.Controls():
		return pick(IndirectWealth, DirectWealth)
	case de.ControlledBy():
		return pick(SevenKillings, DirectOfficer)
	default: // de.ProducedBy()
		return pick(IndirectResource, DirectResource)
	}
}

// Valid reports whether g is a defined label.
func (g TenGod) Valid() bool { return g >= 0 && g < NumTenGods }

// String returns the hangul name.
func (g TenGod) String() string {
	if !g.Valid() {
		return fmt.Sprintf("TenGod(%d)", int(g))
	}
	return tenGodNames[g]
}

// Category returns the ten god's family.
func (g TenGod) Category() Category { return tenGodCategory[g] }

// MarshalText encodes the ten god as its hangul name.
func (g TenGod) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid ten god %d", int(g))
	}
	return []byte(tenGodNames[g]), nil
}

// UnmarshalText decodes a hangul name.
func (g *TenGod) UnmarshalText(b []byte) error {
	for i, n := range tenGodNames {
		if string(b) == n {
			*g = TenGod(i)
			return nil
		}
	}
	return fmt.Errorf("unknown ten god %q", string(b))
}

// String returns the hangul family name.
func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ID returns the english identifier.
func (c Category) ID() string { return categoryIDs[c] }

// SelfSupporting reports whether the family strengthens the day-master.
func (c Category) SelfSupporting() bool {
	return c == CategoryPeers || c == CategoryResource
}

// CategoryCounts tallies ten-god families over a chart.
type CategoryCounts [NumCategories]int

// Get returns the count of a family.
func (c CategoryCounts) Get(cat Category) int { return c[cat] }

// Total counts every categorised ten god.
func (c CategoryCounts) Total() int {
	n := 0
	for cat := CategoryPeers; cat < NumCategories; cat++ {
		n += c[cat]
	}
	return n
}

// SelfSupporting counts peers and resource together.
func (c CategoryCounts) SelfSupporting() int {
	return c[CategoryPeers] + c[CategoryResource]
}

// Draining counts expressive, wealth and authority together.
func (c CategoryCounts) Draining() int {
	return c[CategoryExpressive] + c[CategoryWealth] + c[CategoryAuthority]
}
