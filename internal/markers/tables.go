package markers

import "github.com/f3rmion/saju/internal/saju"

// group is the three-combination family of a branch. The branch index mod 4
// is the same for every member of a family.
type group int

const (
	groupWater group = iota // 신자진
	groupMetal              // 사유축
	groupFire               // 인오술
	groupWood               // 해묘미
)

func groupOf(b saju.Branch) group { return group(b % 4) }

type groupTable [4]saju.Branch

func (t groupTable) of(b saju.Branch) saju.Branch { return t[groupOf(b)] }

var (
	doHwaTable     = groupTable{saju.BranchYu, saju.BranchO, saju.BranchMyo, saju.BranchJa}
	yeokMaTable    = groupTable{saju.BranchIn, saju.BranchHae, saju.BranchSin, saju.BranchSa}
	hwaGaeTable    = groupTable{saju.BranchJin, saju.BranchChuk, saju.BranchSul, saju.BranchMi}
	banAnTable     = groupTable{saju.BranchChuk, saju.BranchSul, saju.BranchMi, saju.BranchJin}
	baekHoTable    = groupTable{saju.BranchSul, saju.BranchMi, saju.BranchJin, saju.BranchChuk}
	jiSalTable     = groupTable{saju.BranchSin, saju.BranchSa, saju.BranchIn, saju.BranchHae}
	geobSalTable   = groupTable{saju.BranchSa, saju.BranchIn, saju.BranchHae, saju.BranchSin}
	mangShinTable  = groupTable{saju.BranchHae, saju.BranchSin, saju.BranchSa, saju.BranchIn}
	jangSeongTable = groupTable{saju.BranchJa, saju.BranchYu, saju.BranchO, saju.BranchMyo}
)

// Ghost-gate pairs; the table holds each branch's partner.
var gwiMunPartner = [saju.NumBranches]saju.Branch{
	saju.BranchJa: saju.BranchYu, saju.BranchYu: saju.BranchJa,
	saju.BranchChuk: saju.BranchO, saju.BranchO: saju.BranchChuk,
	saju.BranchIn: saju.BranchMi, saju.BranchMi: saju.BranchIn,
	saju.BranchMyo: saju.BranchSin, saju.BranchSin: saju.BranchMyo,
	saju.BranchJin: saju.BranchHae, saju.BranchHae: saju.BranchJin,
	saju.BranchSa: saju.BranchSul, saju.BranchSul: saju.BranchSa,
}

var hyeonChimBranches = [saju.NumBranches]bool{saju.BranchMyo: true, saju.BranchO: true, saju.BranchSin: true}

// Yin stems have no blade branch.
var yangInTable = [saju.NumStems]*saju.Branch{
	saju.StemGap:    ptr(saju.BranchMyo),
	saju.StemByeong: ptr(saju.BranchO),
	saju.StemMu:     ptr(saju.BranchO),
	saju.StemGyeong: ptr(saju.BranchYu),
	saju.StemIm:     ptr(saju.BranchJa),
}

var goeGangDays = []saju.StemBranch{
	{Stem: saju.StemGyeong, Branch: saju.BranchJin},
	{Stem: saju.StemGyeong, Branch: saju.BranchSul},
	{Stem: saju.StemIm, Branch: saju.BranchJin},
	{Stem: saju.StemMu, Branch: saju.BranchSul},
}

var hongYeomTable = [saju.NumStems]saju.Branch{
	saju.BranchO, saju.BranchO, saju.BranchIn, saju.BranchMi, saju.BranchJin,
	saju.BranchJin, saju.BranchSul, saju.BranchYu, saju.BranchJa, saju.BranchSin,
}

var cheonEulTable = [saju.NumStems][]saju.Branch{
	saju.StemGap:    {saju.BranchChuk, saju.BranchMi},
	saju.StemEul:    {saju.BranchJa, saju.BranchSin},
	saju.StemByeong: {saju.BranchHae, saju.BranchYu},
	saju.StemJeong:  {saju.BranchHae, saju.BranchYu},
	saju.StemMu:     {saju.BranchChuk, saju.BranchMi},
	saju.StemGi:     {saju.BranchJa, saju.BranchSin},
	saju.StemGyeong: {saju.BranchChuk, saju.BranchMi},
	saju.StemSin:    {saju.BranchIn, saju.BranchO},
	saju.StemIm:     {saju.BranchSa, saju.BranchMyo},
	saju.StemGye:    {saju.BranchSa, saju.BranchMyo},
}

var taeGeukTable = [saju.NumStems][]saju.Branch{
	saju.StemGap:    {saju.BranchJa, saju.BranchO},
	saju.StemEul:    {saju.BranchJa, saju.BranchO},
	saju.StemByeong: {saju.BranchMyo, saju.BranchYu},
	saju.StemJeong:  {saju.BranchMyo, saju.BranchYu},
	saju.StemMu:     {saju.BranchJin, saju.BranchSul, saju.BranchChuk, saju.BranchMi},
	saju.StemGi:     {saju.BranchJin, saju.BranchSul, saju.BranchChuk, saju.BranchMi},
	saju.StemGyeong: {saju.BranchIn, saju.BranchHae},
	saju.StemSin:    {saju.BranchIn, saju.BranchHae},
	saju.StemIm:     {saju.BranchSa, saju.BranchSin},
	saju.StemGye:    {saju.BranchSa, saju.BranchSin},
}

var (
	munChangTable  = [saju.NumStems]saju.Branch{saju.BranchSa, saju.BranchO, saju.BranchSin, saju.BranchYu, saju.BranchSin, saju.BranchYu, saju.BranchHae, saju.BranchJa, saju.BranchIn, saju.BranchMyo}
	hakDangTable   = [saju.NumStems]saju.Branch{saju.BranchHae, saju.BranchO, saju.BranchIn, saju.BranchYu, saju.BranchIn, saju.BranchYu, saju.BranchSa, saju.BranchJa, saju.BranchSin, saju.BranchMyo}
	cheonGwanTable = [saju.NumStems]saju.Branch{saju.BranchMi, saju.BranchJin, saju.BranchSa, saju.BranchIn, saju.BranchMyo, saju.BranchYu, saju.BranchHae, saju.BranchSin, saju.BranchYu, saju.BranchO}
	geumYeoTable   = [saju.NumStems]saju.Branch{saju.BranchJin, saju.BranchSa, saju.BranchMi, saju.BranchSin, saju.BranchMi, saju.BranchSin, saju.BranchSul, saju.BranchHae, saju.BranchChuk, saju.BranchIn}
)

// Month-virtue stem by the month branch's family.
var wolDeokTable = [4]saju.Stem{
	groupWater: saju.StemIm,
	groupMetal: saju.StemGyeong,
	groupFire:  saju.StemByeong,
	groupWood:  saju.StemGap,
}

// symbol is a stem or a branch target.
type symbol struct {
	stem     saju.Stem
	branch   saju.Branch
	isBranch bool
}

func (s symbol) matches(sb saju.StemBranch) bool {
	if s.isBranch {
		return sb.Branch == s.branch
	}
	return sb.Stem == s.stem
}

func (s symbol) String() string {
	if s.isBranch {
		return s.branch.String()
	}
	return s.stem.String()
}

func stemTarget(s saju.Stem) symbol     { return symbol{stem: s} }
func branchTarget(b saju.Branch) symbol { return symbol{branch: b, isBranch: true} }

// Heaven-virtue target by month branch. Four months point at a branch.
var cheonDeokTable = [saju.NumBranches]symbol{
	saju.BranchIn:   stemTarget(saju.StemJeong),
	saju.BranchMyo:  branchTarget(saju.BranchSin),
	saju.BranchJin:  stemTarget(saju.StemIm),
	saju.BranchSa:   stemTarget(saju.StemSin),
	saju.BranchO:    branchTarget(saju.BranchHae),
	saju.BranchMi:   stemTarget(saju.StemGap),
	saju.BranchSin:  stemTarget(saju.StemGye),
	saju.BranchYu:   branchTarget(saju.BranchIn),
	saju.BranchSul:  stemTarget(saju.StemByeong),
	saju.BranchHae:  stemTarget(saju.StemEul),
	saju.BranchJa:   branchTarget(saju.BranchSa),
	saju.BranchChuk: stemTarget(saju.StemGyeong),
}

func ptr[T any](v T) *T { return &v }
