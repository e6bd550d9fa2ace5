package saju

import "fmt"

// Stem is one of the ten heavenly stems (천간).
type Stem int

const (
	StemGap    Stem = iota // 갑 甲
	StemEul                // 을 乙
	StemByeong             // 병 丙
	StemJeong              // 정 丁
	StemMu                 // 무 戊
	StemGi                 // 기 己
	StemGyeong             // 경 庚
	StemSin                // 신 辛
	StemIm                 // 임 壬
	StemGye                // 계 癸
)

// NumStems is the number of heavenly stems.
const NumStems = 10

var stemNames = [NumStems]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
var stemHanja = [NumStems]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemElements = [NumStems]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// Stems lists every stem in cycle order.
func Stems() [NumStems]Stem {
	var out [NumStems]Stem
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= 0 && s < NumStems }

// String returns the hangul name.
func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// Hanja returns the stem's character.
func (s Stem) Hanja() string { return stemHanja[s] }

// Element returns the stem's element.
func (s Stem) Element() Element { return stemElements[s] }

// Polarity returns yang for even stems and yin for odd ones.
func (s Stem) Polarity() Polarity { return Polarity(s % 2) }

// MarshalText encodes the stem as its hangul name.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stem %d", int(s))
	}
	return []byte(stemNames[s]), nil
}

// UnmarshalText accepts the hangul name or the hanja.
func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStem parses a hangul or hanja stem.
func ParseStem(sym string) (Stem, error) {
	for i := range NumStems {
		if sym == stemNames[i] || sym == stemHanja[i] {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", sym)
}
