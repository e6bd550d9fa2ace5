package relations

import "github.com/f3rmion/saju/internal/saju"

// stemCombination reports whether two stems combine (천간합) and the
// element they form. Partners sit five stems apart.
func stemCombination(a, b saju.Stem) (saju.Element, bool) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo != 5 {
		return 0, false
	}
	return stemCombinationElements[lo], true
}

var stemCombinationElements = [5]saju.Element{
	saju.StemGap:    saju.Earth,
	saju.StemEul:    saju.Metal,
	saju.StemByeong: saju.Water,
	saju.StemJeong:  saju.Wood,
	saju.StemMu:     saju.Fire,
}

var grudgePartner = [saju.NumBranches]saju.Branch{
	saju.BranchJa: saju.BranchMi, saju.BranchMi: saju.BranchJa,
	saju.BranchChuk: saju.BranchO, saju.BranchO: saju.BranchChuk,
	saju.BranchIn: saju.BranchYu, saju.BranchYu: saju.BranchIn,
	saju.BranchMyo: saju.BranchSin, saju.BranchSin: saju.BranchMyo,
	saju.BranchJin: saju.BranchHae, saju.BranchHae: saju.BranchJin,
	saju.BranchSa: saju.BranchSul, saju.BranchSul: saju.BranchSa,
}

var breakagePartner = [saju.NumBranches]saju.Branch{
	saju.BranchJa: saju.BranchYu, saju.BranchYu: saju.BranchJa,
	saju.BranchChuk: saju.BranchJin, saju.BranchJin: saju.BranchChuk,
	saju.BranchIn: saju.BranchHae, saju.BranchHae: saju.BranchIn,
	saju.BranchMyo: saju.BranchO, saju.BranchO: saju.BranchMyo,
	saju.BranchSa: saju.BranchSin, saju.BranchSin: saju.BranchSa,
	saju.BranchSul: saju.BranchMi, saju.BranchMi: saju.BranchSul,
}

type sixPair struct {
	partner saju.Branch
	element saju.Element
}

var sixCombinations = [saju.NumBranches]sixPair{
	saju.BranchJa:   {saju.BranchChuk, saju.Earth},
	saju.BranchChuk: {saju.BranchJa, saju.Earth},
	saju.BranchIn:   {saju.BranchHae, saju.Wood},
	saju.BranchHae:  {saju.BranchIn, saju.Wood},
	saju.BranchMyo:  {saju.BranchSul, saju.Fire},
	saju.BranchSul:  {saju.BranchMyo, saju.Fire},
	saju.BranchJin:  {saju.BranchYu, saju.Metal},
	saju.BranchYu:   {saju.BranchJin, saju.Metal},
	saju.BranchSa:   {saju.BranchSin, saju.Water},
	saju.BranchSin:  {saju.BranchSa, saju.Water},
	saju.BranchO:    {saju.BranchMi, saju.Fire},
	saju.BranchMi:   {saju.BranchO, saju.Fire},
}

func sixCombination(a, b saju.Branch) (saju.Element, bool) {
	p := sixCombinations[a]
	return p.element, p.partner == b
}

// directedPunishment is a punishment between two branches. When either is
// set the pair matches in both pillar orders and is reported in its own
// direction; otherwise the earlier pillar must hold from.
type directedPunishment struct {
	name     string
	from, to saju.Branch
	either   bool
}

var directedPunishments = []directedPunishment{
	{"무은지형", saju.BranchIn, saju.BranchSa, true},
	{"무은지형", saju.BranchSa, saju.BranchSin, true},
	{"무은지형", saju.BranchSin, saju.BranchIn, true},
	{"지세지형", saju.BranchChuk, saju.BranchSul, true},
	{"지세지형", saju.BranchSul, saju.BranchMi, true},
	{"지세지형", saju.BranchMi, saju.BranchChuk, true},
	{"무례지형", saju.BranchJa, saju.BranchMyo, false},
}

var selfPunishing = []saju.Branch{saju.BranchJin, saju.BranchO, saju.BranchYu, saju.BranchHae}

type branchGroup struct {
	members [3]saju.Branch
	element saju.Element
}

var threeCombinations = []branchGroup{
	{[3]saju.Branch{saju.BranchSin, saju.BranchJa, saju.BranchJin}, saju.Water},
	{[3]saju.Branch{saju.BranchHae, saju.BranchMyo, saju.BranchMi}, saju.Wood},
	{[3]saju.Branch{saju.BranchIn, saju.BranchO, saju.BranchSul}, saju.Fire},
	{[3]saju.Branch{saju.BranchSa, saju.BranchYu, saju.BranchChuk}, saju.Metal},
}

var directionals = []branchGroup{
	{[3]saju.Branch{saju.BranchIn, saju.BranchMyo, saju.BranchJin}, saju.Wood},
	{[3]saju.Branch{saju.BranchSa, saju.BranchO, saju.BranchMi}, saju.Fire},
	{[3]saju.Branch{saju.BranchSin, saju.BranchYu, saju.BranchSul}, saju.Metal},
	{[3]saju.Branch{saju.BranchHae, saju.BranchJa, saju.BranchChuk}, saju.Water},
}
