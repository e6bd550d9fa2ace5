package saju

import "fmt"

// TwelveStage is the vitality of the day-master at a branch (십이운성).
type TwelveStage int

const (
	StageBirth       TwelveStage = iota // 장생
	StageBath                           // 목욕
	StageCrown                          // 관대
	StageOffice                         // 건록
	StagePeak                           // 제왕
	StageDecline                        // 쇠
	StageSickness                       // 병
	StageDeath                          // 사
	StageTomb                           // 묘
	StageExtinction                     // 절
	StageConception                     // 태
	StageNurture                        // 양
)

// NumStages is the number of twelve-stage labels.
const NumStages = 12

var stageNames = [NumStages]string{"장생", "목욕", "관대", "건록", "제왕", "쇠", "병", "사", "묘", "절", "태", "양"}

// Branch where each stem's cycle starts.
var birthBranch = [NumStems]Branch{
	StemGap:    BranchHae,
	StemEul:    BranchO,
	StemByeong: BranchIn,
	StemJeong:  BranchYu,
	StemMu:     BranchIn,
	StemGi:     BranchYu,
	StemGyeong: BranchSa,
	StemSin:    BranchJa,
	StemIm:     BranchSin,
	StemGye:    BranchMyo,
}

// StageOf returns the stage of stem s at branch b. Yang stems advance
// through the branches, yin stems retreat.
func StageOf(s Stem, b Branch) TwelveStage {
	start := int(birthBranch[s])
	var d int
	if s.Polarity() == Yang {
		d = int(b) - start
	} else {
		d = start - int(b)
	}
	return TwelveStage(((d % NumStages) + NumStages) % NumStages)
}

// String returns the hangul name.
func (t TwelveStage) String() string {
	if t < 0 || t >= NumStages {
		return fmt.Sprintf("TwelveStage(%d)", int(t))
	}
	return stageNames[t]
}

// MarshalText encodes the stage as its hangul name.
func (t TwelveStage) MarshalText() ([]byte, error) {
	if t < 0 || t >= NumStages {
		return nil, fmt.Errorf("invalid twelve stage %d", int(t))
	}
	return []byte(stageNames[t]), nil
}

// UnmarshalText decodes a hangul name.
func (t *TwelveStage) UnmarshalText(b []byte) error {
	for i, n := range stageNames {
		if string(b) == n {
			*t = TwelveStage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown twelve stage %q", string(b))
}
