package saju

import (
	"fmt"
	"unicode/utf8"
)

// CycleLength is the length of the sexagenary (60갑자) cycle.
const CycleLength = 60

// StemBranch is a stem paired with a branch, the unit of every pillar and
// luck period.
type StemBranch struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// FromIndex returns the pair at position i of the sexagenary cycle.
func FromIndex(i int) StemBranch {
	i = ((i % CycleLength) + CycleLength) % CycleLength
	return StemBranch{Stem: Stem(i % NumStems), Branch: Branch(i % NumBranches)}
}

// Index returns the pair's position in the sexagenary cycle. Pairs whose
// stem and branch polarity differ never occur in a calendar; for them the
// result is still a stable value in [0, 60).
func (sb StemBranch) Index() int {
	i := (6*int(sb.Stem) - 5*int(sb.Branch)) % CycleLength
	if i < 0 {
		i += CycleLength
	}
	return i
}

// Step moves n positions through the sexagenary cycle.
func (sb StemBranch) Step(n int) StemBranch {
	return FromIndex(sb.Index() + n)
}

// String returns the hangul pair, e.g. "갑자".
func (sb StemBranch) String() string {
	return sb.Stem.String() + sb.Branch.String()
}

// Hanja returns the pair in hanja, e.g. "甲子".
func (sb StemBranch) Hanja() string {
	return sb.Stem.Hanja() + sb.Branch.Hanja()
}

// ParseStemBranch parses a two-character pair written in hangul or hanja.
func ParseStemBranch(s string) (StemBranch, error) {
	if utf8.RuneCountInString(s) != 2 {
		return StemBranch{}, fmt.Errorf("stem-branch %q: want two characters", s)
	}
	r, size := utf8.DecodeRuneInString(s)
	stem, err := ParseStem(string(r))
	if err != nil {
		return StemBranch{}, fmt.Errorf("stem-branch %q: %w", s, err)
	}
	branch, err := ParseBranch(s[size:])
	if err != nil {
		return StemBranch{}, fmt.Errorf("stem-branch %q: %w", s, err)
	}
	return StemBranch{Stem: stem, Branch: branch}, nil
}
