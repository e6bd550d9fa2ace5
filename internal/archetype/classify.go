package archetype

import (
	"github.com/f3rmion/saju/internal/analysis"
	"github.com/f3rmion/saju/internal/markers"
	"github.com/f3rmion/saju/internal/saju"
)

// Affinity bounds.
const (
	MinAffinity = 5
	MaxAffinity = 95
)

// Detection lists hold between these many lines.
const (
	minDetectionLines = 3
	maxDetectionLines = 6
)

// Classification is the classifier result.
type Classification struct {
	ID                  ID       `json:"typeId"`
	AffinityScore       int      `json:"affinityScore"`
	AffinityDescription string   `json:"affinityDescription"`
	MatchReason         string   `json:"matchReason"`
	DetectionLines      []string `json:"detectionLines"`
	Rule                string   `json:"rule"`
	Phase               int      `json:"phase"`
}

// Classifier classifies against a registry.
type Classifier struct {
	registry *Registry
}

// NewClassifier returns a classifier backed by r, or by the embedded
// catalog when r is nil.
func NewClassifier(r *Registry) *Classifier {
	if r == nil {
		r = Default()
	}
	return &Classifier{registry: r}
}

// Registry returns the catalog the classifier pads detection lines from.
func (c *Classifier) Registry() *Registry { return c.registry }

// Classify picks exactly one archetype. Identical input always gives the
// identical result.
func (c *Classifier) Classify(in Input) Classification {
	f := factsOf(in)
	r := match(f)
	score := affinity(f, r.Archetype)
	return Classification{
		ID:                  r.Archetype,
		AffinityScore:       score,
		AffinityDescription: DescribeAffinity(score),
		MatchReason:         r.Reason,
		DetectionLines:      c.detectionLines(in.Chart.DayMaster(), f, r.Archetype),
		Rule:                r.Name,
		Phase:               r.Phase,
	}
}

// Classify runs the classifier on the embedded catalog.
func Classify(in Input) Classification {
	return NewClassifier(nil).Classify(in)
}

func affinity(f facts, id ID) int {
	score := 50
	if f.has(markers.GwiMunGwan) {
		score += 20
	}
	if f.has(markers.HwaGae) {
		score += 10
	}
	if f.has(markers.DoHwa) {
		score += 8
	}
	score += 5 * f.clashes
	score += 5 * f.grudges
	if f.strength.IsExtreme() {
		score += 10
	}
	score += 5 * len(f.elements.Missing)

	if trigger, ok := triggers[id]; ok && f.has(trigger) {
		score += 10
	}
	return clamp(score)
}

// triggers pairs archetypes with the marker that defines them.
var triggers = map[ID]markers.SpecialMarker{
	GwiMun:         markers.GwiMunGwan,
	IkGwi:          markers.DoHwa,
	HwangCheonGaek: markers.YeokMa,
}

func clamp(score int) int {
	return max(MinAffinity, min(MaxAffinity, score))
}

// DescribeAffinity returns the label for an affinity score.
func DescribeAffinity(score int) string {
	switch {
	case score >= 80:
		return "바짝 붙어있다. 거의 같이 사는 수준이야."
	case score >= 65:
		return "가까이 있다. 니가 약해지면 바로 온다."
	case score >= 50:
		return "좀 떨어져 있긴 한데, 보고는 있다."
	case score >= 35:
		return "멀리 있다. 근데 연결은 돼 있어."
	default:
		return "아직 멀다. 근데 끊어진 건 아니야."
	}
}

var dayMasterLines = [saju.NumStems]string{
	saju.StemGap:    "갑목 일간... 큰 나무인데, 뿌리 쪽에 뭔가 있다.",
	saju.StemEul:    "을목 일간... 풀잎 같은데, 바람 불면 쏠린다.",
	saju.StemByeong: "병화 일간... 불이 세다. 근데 그 불이 좀 이상해.",
	saju.StemJeong:  "정화 일간... 촛불 같은 사주인데, 바람에 흔들리고 있어.",
	saju.StemMu:     "무토 일간... 산 같은 사주인데, 속이 비어있다.",
	saju.StemGi:     "기토 일간... 땅인데, 밑에 뭔가 묻혀있어.",
	saju.StemGyeong: "경금 일간... 쇠인데, 녹이 슬고 있다.",
	saju.StemSin:    "신금 일간... 칼날인데, 방향이 안 쪽을 향해있어.",
	saju.StemIm:     "임수 일간... 물이 깊다. 바닥이 안 보여.",
	saju.StemGye:    "계수 일간... 이슬 같은 사주인데, 아침이면 사라진다.",
}

var missingLines = [saju.NumElements]string{
	saju.Wood:  "목 기운이 없다. 시작하는 힘이 부족하다.",
	saju.Fire:  "화 기운이 없다. 따뜻함이 빠져있어.",
	saju.Earth: "토 기운이 없다. 중심을 잡을 데가 없다.",
	saju.Metal: "금 기운이 없다. 끊을 줄을 모른다.",
	saju.Water: "수 기운이 없다. 쉴 줄을 모르는 사주야.",
}

var dominantLines = [saju.NumElements]string{
	saju.Wood:  "목 기운이 넘친다. 자라기만 하고 열매를 안 맺어.",
	saju.Fire:  "화 기운이 뛴다. 안에서 불이 타고 있어.",
	saju.Earth: "토 기운이 무겁다. 스스로를 가두고 있어.",
	saju.Metal: "금 기운이 날카롭다. 자기도 남도 베고 있어.",
	saju.Water: "수 기운이 깊다. 감정이 넘치고 있어.",
}

// markerLines run in this order. A marker is skipped when it is the
// trigger of the chosen archetype; its teaser lines already cover it.
var markerLines = []struct {
	marker markers.SpecialMarker
	line   string
}{
	{markers.GwiMunGwan, "귀문관살이 열려있다. 문이 닫혀있어야 하는데."},
	{markers.DoHwa, "도화살. 사람한테 끌려다니는 팔자다."},
	{markers.HwaGae, "화개살. 보통 사람보다 많이 느끼는 사주야."},
	{markers.YeokMa, "역마살. 한 곳에 못 붙어있는 사주다."},
}

func (c *Classifier) detectionLines(dm saju.Stem, f facts, id ID) []string {
	lines := []string{dayMasterLines[dm]}

	switch {
	case len(f.elements.Missing) > 0:
		lines = append(lines, missingLines[f.elements.Missing[0]])
	case len(f.elements.Dominant) > 0:
		lines = append(lines, dominantLines[f.elements.Dominant[0]])
	}

	for _, ml := range markerLines {
		if !f.has(ml.marker) {
			continue
		}
		if t, ok := triggers[id]; ok && t == ml.marker {
			continue
		}
		lines = append(lines, ml.line)
	}

	switch f.strength {
	case analysis.VeryStrong:
		lines = append(lines, "사주가 세다. 이래 세면 고놈이 좋아하거든.")
	case analysis.VeryWeak:
		lines = append(lines, "사주가 약하다. 빈틈이 많아.")
	}

	if len(lines) > maxDetectionLines {
		lines = lines[:maxDetectionLines]
	}
	teasers := c.registry.MustGet(id).TeaserLines
	for i := 0; len(lines) < minDetectionLines && i < len(teasers); i++ {
		lines = append(lines, teasers[i])
	}
	return lines
}
