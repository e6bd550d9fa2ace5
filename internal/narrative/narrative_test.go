package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/saju"
)

func TestCatalog(t *testing.T) {
	all := Sections()
	require.Len(t, all, 13)
	for i, s := range all {
		assert.Equal(t, i+1, s.Order, s.ID)
	}

	sizes := map[Batch]int{BatchA: 4, BatchB: 4, BatchC1: 2, BatchC2: 3}
	for b, n := range sizes {
		assert.Len(t, SectionsOf(b), n, b)
	}

	d, ok := Lookup("ghost_conclusion")
	require.True(t, ok)
	assert.Equal(t, "鬼: 귀신사주 결론", d.FallbackTitle())

	_, err := ParseBatch("C3")
	assert.Error(t, err)
	b, err := ParseBatch("C1")
	require.NoError(t, err)
	assert.Equal(t, BatchC1, b)
}

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"preamble that is ignored",
		"===SECTION_START::saju_traits===",
		"  그림자의 제목  ",
		"첫 줄",
		"둘째 줄",
		"===SECTION_END::saju_traits===",
		"===SECTION_START::unknown_section===",
		"제목",
		"===SECTION_END::unknown_section===",
		"===SECTION_START::ilju_character===",
		"",
		"===SECTION_END::ilju_character===",
		"===SECTION_START::wealth_detail===",
		"never closed",
	}, "\n")

	got := Parse(text)
	require.Len(t, got, 2)

	assert.Equal(t, Section{ID: "saju_traits", Title: "그림자의 제목", Content: "첫 줄\n둘째 줄", Order: 2}, got[0])
	assert.Equal(t, Section{ID: "ilju_character", Title: "魂: 니 영혼의 본모습", Content: "", Order: 1}, got[1])
}

func TestParseMismatchedEnd(t *testing.T) {
	text := "===SECTION_START::saju_traits===\n제목\n본문\n===SECTION_END::ilju_character===\n===SECTION_END::saju_traits==="
	got := Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, "본문\n===SECTION_END::ilju_character===", got[0].Content)
}

func TestMerge(t *testing.T) {
	a := StartMarker("ohaeng_analysis") + "\n기운\n균형 이야기\n" + EndMarker("ohaeng_analysis")
	dup := StartMarker("ohaeng_analysis") + "\n다른 제목\n무시됨\n" + EndMarker("ohaeng_analysis")
	c2 := StartMarker("career_study") + "\n업\n재능 이야기\n" + EndMarker("career_study")

	got := Merge(c2, "", a, dup)
	require.Len(t, got, 13)
	for i, s := range got {
		assert.Equal(t, i+1, s.Order)
	}

	assert.Equal(t, "기운", got[2].Title)
	assert.False(t, got[2].Fallback)
	assert.Equal(t, "재능 이야기", got[11].Content)

	assert.True(t, got[0].Fallback)
	assert.Equal(t, "魂: 니 영혼의 본모습", got[0].Title)
	assert.Equal(t, FallbackContent, got[0].Content)
}

func TestCompose(t *testing.T) {
	r, err := engine.New(calendar.NewLunarAdapter()).Compute(saju.BirthInput{
		Year: 1992, Month: 8, Day: 14, Hour: saju.UnknownHour, Gender: saju.Female,
	})
	require.NoError(t, err)

	c := NewComposer(nil)
	brief, err := c.Compose(r, BatchC1)
	require.NoError(t, err)

	assert.Contains(t, brief, StartMarker("wealth_overview"))
	assert.Contains(t, brief, EndMarker("wealth_detail"))
	assert.NotContains(t, brief, StartMarker("love_marriage"))
	assert.Contains(t, brief, "시주: 모름")
	assert.Contains(t, brief, r.Archetype.MatchReason)

	_, err = c.Compose(r, Batch("Z"))
	assert.Error(t, err)

	require.NoError(t, c.SetTemplate(`{{.Batch}}:{{len .Sections}}`))
	brief, err = c.Compose(r, BatchB)
	require.NoError(t, err)
	assert.Equal(t, "B:4", brief)

	assert.Error(t, c.SetTemplate(`{{.Batch`))
}
