// Package narrative holds the catalog of reading sections, composes the
// per-batch brief handed to a writer, and parses the delimited text that
// comes back.
package narrative

import "fmt"

// Batch groups sections that are written together.
type Batch string

const (
	BatchA  Batch = "A"  // character
	BatchB  Batch = "B"  // life flow
	BatchC1 Batch = "C1" // wealth
	BatchC2 Batch = "C2" // love, career, conclusion
)

// Batches returns every batch in writing order.
func Batches() []Batch { return []Batch{BatchA, BatchB, BatchC1, BatchC2} }

// ParseBatch accepts a batch name.
func ParseBatch(s string) (Batch, error) {
	for _, b := range Batches() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown batch %q", s)
}

// SectionDef is one entry of the section catalog.
type SectionDef struct {
	ID        string `json:"id"`
	Order     int    `json:"order"`
	Batch     Batch  `json:"batch"`
	HanjaIcon string `json:"hanjaIcon"`
	Title     string `json:"title"`
}

// FallbackTitle is the title used when a section is missing or untitled.
func (d SectionDef) FallbackTitle() string { return d.HanjaIcon + ": " + d.Title }

var sections = []SectionDef{
	{"ilju_character", 1, BatchA, "魂", "니 영혼의 본모습"},
	{"saju_traits", 2, BatchA, "影", "숨겨진 그림자"},
	{"ohaeng_analysis", 3, BatchA, "氣", "기운의 균형"},
	{"sipsung_analysis", 4, BatchA, "緣", "인연의 그물"},

	{"period_traits", 5, BatchB, "命", "운명의 길목"},
	{"twelve_stages", 6, BatchB, "劫", "인생의 고비"},
	{"sinsal_analysis", 7, BatchB, "煞", "살기의 흔적"},
	{"guiin_analysis", 8, BatchB, "貴", "귀인과 고독"},

	{"wealth_overview", 9, BatchC1, "財", "재물의 흐름"},
	{"wealth_detail", 10, BatchC1, "慾", "탐욕의 경계"},

	{"love_marriage", 11, BatchC2, "情", "사랑과 인연"},
	{"career_study", 12, BatchC2, "業", "업과 재능"},
	{"ghost_conclusion", 13, BatchC2, "鬼", "귀신사주 결론"},
}

var sectionByID = func() map[string]SectionDef {
	m := make(map[string]SectionDef, len(sections))
	for _, s := range sections {
		m[s.ID] = s
	}
	return m
}()

// Sections returns the catalog in order.
func Sections() []SectionDef { return append([]SectionDef(nil), sections...) }

// Lookup finds a section by id.
func Lookup(id string) (SectionDef, bool) {
	s, ok := sectionByID[id]
	return s, ok
}

// SectionsOf returns the sections of one batch in order.
func SectionsOf(b Batch) []SectionDef {
	var out []SectionDef
	for _, s := range sections {
		if s.Batch == b {
			out = append(out, s)
		}
	}
	return out
}
