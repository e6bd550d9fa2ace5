package saju

import "fmt"

// Nayin is the sound element (납음) shared by two consecutive pairs of the
// sexagenary cycle.
type Nayin int

// NumNayin is the number of sound-element names.
const NumNayin = 30

type nayinDef struct {
	name    string
	hanja   string
	element Element
}

var nayinTable = [NumNayin]nayinDef{
	{"해중금", "海中金", Metal},
	{"노중화", "爐中火", Fire},
	{"대림목", "大林木", Wood},
	{"노방토", "路傍土", Earth},
	{"검봉금", "劍鋒金", Metal},
	{"산두화", "山頭火", Fire},
	{"간하수", "澗下水", Water},
	{"성두토", "城頭土", Earth},
	{"백랍금", "白蠟金", Metal},
	{"양류목", "楊柳木", Wood},
	{"천중수", "泉中水", Water},
	{"옥상토", "屋上土", Earth},
	{"벽력화", "霹靂火", Fire},
	{"송백목", "松柏木", Wood},
	{"장류수", "長流水", Water},
	{"사중금", "沙中金", Metal},
	{"산하화", "山下火", Fire},
	{"평지목", "平地木", Wood},
	{"벽상토", "壁上土", Earth},
	{"금박금", "金箔金", Metal},
	{"복등화", "覆燈火", Fire},
	{"천하수", "天河水", Water},
	{"대역토", "大驛土", Earth},
	{"차천금", "釵釧金", Metal},
	{"상자목", "桑柘木", Wood},
	{"대계수", "大溪水", Water},
	{"사중토", "沙中土", Earth},
	{"천상화", "天上火", Fire},
	{"석류목", "石榴木", Wood},
	{"대해수", "大海水", Water},
}

// NayinOf returns the sound element of a stem-branch pair.
func NayinOf(sb StemBranch) Nayin { return Nayin(sb.Index() / 2) }

// String returns the hangul name.
func (n Nayin) String() string {
	if n < 0 || n >= NumNayin {
		return fmt.Sprintf("Nayin(%d)", int(n))
	}
	return nayinTable[n].name
}

// Hanja returns the name in hanja.
func (n Nayin) Hanja() string { return nayinTable[n].hanja }

// Element returns the element the sound belongs to.
func (n Nayin) Element() Element { return nayinTable[n].element }

// MarshalText encodes the sound element as its hangul name.
func (n Nayin) MarshalText() ([]byte, error) {
	if n < 0 || n >= NumNayin {
		return nil, fmt.Errorf("invalid nayin %d", int(n))
	}
	return []byte(nayinTable[n].name), nil
}

// UnmarshalText decodes a hangul name.
func (n *Nayin) UnmarshalText(b []byte) error {
	for i, d := range nayinTable {
		if string(b) == d.name {
			*n = Nayin(i)
			return nil
		}
	}
	return fmt.Errorf("unknown nayin %q", string(b))
}
