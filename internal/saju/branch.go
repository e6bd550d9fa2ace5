package saju

import "fmt"

// Branch is one of the twelve earthly branches (지지).
type Branch int

const (
	BranchJa   Branch = iota // 자 子
	BranchChuk               // 축 丑
	BranchIn                 // 인 寅
	BranchMyo                // 묘 卯
	BranchJin                // 진 辰
	BranchSa                 // 사 巳
	BranchO                  // 오 午
	BranchMi                 // 미 未
	BranchSin                // 신 申
	BranchYu                 // 유 酉
	BranchSul                // 술 戌
	BranchHae                // 해 亥
)

// NumBranches is the number of earthly branches.
const NumBranches = 12

var branchNames = [NumBranches]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
var branchHanja = [NumBranches]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [NumBranches]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

var branchPolarity = [NumBranches]Polarity{
	Yang, Yin, Yang, Yin, Yang, Yin, Yang, Yin, Yang, Yin, Yang, Yin,
}

// Hidden stems per branch, main stem first.
var hiddenStems = [NumBranches][]Stem{
	BranchJa:   {StemGye},
	BranchChuk: {StemGi, StemGye, StemSin},
	BranchIn:   {StemGap, StemByeong, StemMu},
	BranchMyo:  {StemEul},
	BranchJin:  {StemMu, StemEul, StemGye},
	BranchSa:   {StemByeong, StemGyeong, StemMu},
	BranchO:    {StemJeong, StemGi},
	BranchMi:   {StemGi, StemJeong, StemEul},
	BranchSin:  {StemGyeong, StemIm, StemMu},
	BranchYu:   {StemSin},
	BranchSul:  {StemMu, StemSin, StemJeong},
	BranchHae:  {StemIm, StemGap},
}

var zodiacAnimals = [NumBranches]string{"쥐", "소", "호랑이", "토끼", "용", "뱀", "말", "양", "원숭이", "닭", "개", "돼지"}

// Branches lists every branch in cycle order.
func Branches() [NumBranches]Branch {
	var out [NumBranches]Branch
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= 0 && b < NumBranches }

// String returns the hangul name.
func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// Hanja returns the branch's character.
func (b Branch) Hanja() string { return branchHanja[b] }

// Element returns the branch's element.
func (b Branch) Element() Element { return branchElements[b] }

// Polarity returns the branch's polarity.
func (b Branch) Polarity() Polarity { return branchPolarity[b] }

// HiddenStems returns the stems stored in the branch, main stem first.
// The returned slice is a copy.
func (b Branch) HiddenStems() []Stem {
	return append([]Stem(nil), hiddenStems[b]...)
}

// MainStem returns the branch's main hidden stem.
func (b Branch) MainStem() Stem { return hiddenStems[b][0] }

// Zodiac returns the animal of the branch.
func (b Branch) Zodiac() string { return zodiacAnimals[b] }

// Clash returns the opposite branch (충).
func (b Branch) Clash() Branch { return b.Add(NumBranches / 2) }

// Harm returns the branch that harms b (육해). Pairs sum to 7 mod 12.
func (b Branch) Harm() Branch { return Branch(0).Add(7 - int(b)) }

// Add steps n branches forward (or backward for negative n).
func (b Branch) Add(n int) Branch {
	return Branch(((int(b)+n)%NumBranches + NumBranches) % NumBranches)
}

// MarshalText encodes the branch as its hangul name.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid branch %d", int(b))
	}
	return []byte(branchNames[b]), nil
}

// UnmarshalText accepts the hangul name or the hanja.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBranch parses a hangul or hanja branch.
func ParseBranch(sym string) (Branch, error) {
	for i := range NumBranches {
		if sym == branchNames[i] || sym == branchHanja[i] {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", sym)
}
