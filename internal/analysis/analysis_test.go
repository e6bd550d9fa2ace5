package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/saju"
)

func sb(t *testing.T, s string) saju.StemBranch {
	t.Helper()
	v, err := saju.ParseStemBranch(s)
	require.NoError(t, err)
	return v
}

func chartOf(t *testing.T, year, month, day, hour string) saju.Chart {
	t.Helper()
	var h *saju.StemBranch
	if hour != "" {
		v := sb(t, hour)
		h = &v
	}
	return saju.NewChart(sb(t, year), sb(t, month), sb(t, day), h)
}

func TestElements(t *testing.T) {
	c := chartOf(t, "己卯", "丙子", "戊午", "戊午")
	b := Elements(c)

	assert.Equal(t, 1.5, b.Counts.Get(saju.Wood))
	assert.Equal(t, 4.0, b.Counts.Get(saju.Fire))
	assert.Equal(t, 4.0, b.Counts.Get(saju.Earth))
	assert.Equal(t, 0.0, b.Counts.Get(saju.Metal))
	assert.Equal(t, 1.5, b.Counts.Get(saju.Water))

	assert.Equal(t, []saju.Element{saju.Fire, saju.Earth}, b.Dominant)
	assert.Equal(t, []saju.Element{saju.Wood, saju.Water}, b.Weak)
	assert.Equal(t, []saju.Element{saju.Metal}, b.Missing)
	assert.True(t, b.IsMissing(saju.Metal))
}

func TestElementsConservation(t *testing.T) {
	for _, year := range []string{"甲子", "乙丑", "丙寅", "丁卯", "戊辰", "己巳", "庚午", "辛未", "壬申", "癸酉"} {
		for _, hour := range []string{"", "甲戌", "丁亥"} {
			c := chartOf(t, year, "丙子", "戊午", hour)
			b := Elements(c)
			want := 2*float64(len(c.Pillars())) + HiddenWeight*float64(c.HiddenStemCount())
			assert.InDelta(t, want, b.Counts.Total(), 1e-9, "%s %s", year, hour)

			seen := map[saju.Element]bool{}
			for _, set := range [][]saju.Element{b.Dominant, b.Weak, b.Missing} {
				for _, e := range set {
					assert.False(t, seen[e], "element %s listed twice", e)
					seen[e] = true
				}
			}
		}
	}
}

func TestElementsUniformHasNoWeak(t *testing.T) {
	b := Elements(chartOf(t, "乙卯", "乙卯", "乙卯", "乙卯"))
	assert.Equal(t, 10.0, b.Counts.Get(saju.Wood))
	assert.Equal(t, []saju.Element{saju.Wood}, b.Dominant)
	assert.Empty(t, b.Weak)
	assert.Len(t, b.Missing, 4)
}

func TestElementCountsJSON(t *testing.T) {
	var c ElementCounts
	c[saju.Fire] = 2.5
	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"wood":0,"fire":2.5,"earth":0,"metal":0,"water":0}`, string(out))

	var back ElementCounts
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, c, back)
}

func TestAnalyzeStrength(t *testing.T) {
	s := AnalyzeStrength(chartOf(t, "己卯", "丙子", "戊午", "戊午"))
	assert.Equal(t, 78, s.Score)
	assert.Equal(t, VeryStrong, s.Category)
	assert.Equal(t, saju.Water, s.SeasonalElement)
	assert.False(t, s.SeasonalDominance)

	s = AnalyzeStrength(chartOf(t, "庚申", "庚申", "甲申", "庚申"))
	assert.Equal(t, 27, s.Score)
	assert.Equal(t, VeryWeak, s.Category)
}

func TestAnalyzeStrengthSeasonalBonus(t *testing.T) {
	with := AnalyzeStrength(chartOf(t, "庚申", "丙寅", "甲申", ""))
	assert.True(t, with.SeasonalDominance)
	assert.Equal(t, saju.Wood, with.SeasonalElement)

	// 해 is water, which feeds wood.
	assert.True(t, AnalyzeStrength(chartOf(t, "庚申", "丁亥", "甲申", "")).SeasonalDominance)
	assert.False(t, AnalyzeStrength(chartOf(t, "庚申", "壬申", "甲申", "")).SeasonalDominance)
}

func TestStrengthScoreIsBounded(t *testing.T) {
	s := AnalyzeStrength(chartOf(t, "乙卯", "乙卯", "乙卯", "乙卯"))
	assert.True(t, s.SeasonalDominance)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, VeryStrong, s.Category)
}

func TestCategoryOf(t *testing.T) {
	tests := map[int]StrengthCategory{
		100: VeryStrong, 70: VeryStrong, 69: Strong, 55: Strong, 54: Balanced,
		45: Balanced, 44: Weak, 30: Weak, 29: VeryWeak, 0: VeryWeak,
	}
	for score, want := range tests {
		assert.Equal(t, want, CategoryOf(score), "score %d", score)
	}
}

func TestSeasonOf(t *testing.T) {
	earth := []saju.Branch{saju.BranchJin, saju.BranchSul, saju.BranchChuk, saju.BranchMi}
	for _, b := range earth {
		assert.Equal(t, saju.Earth, SeasonOf(b))
	}
	assert.Equal(t, saju.Fire, SeasonOf(saju.BranchO))
	assert.Equal(t, saju.Metal, SeasonOf(saju.BranchYu))
}

func TestResolveFavorable(t *testing.T) {
	assert.Equal(t, Favorable{Primary: saju.Metal, Secondary: saju.Wood, Unfavorable: saju.Fire},
		ResolveFavorable(saju.Earth, VeryStrong))
	assert.Equal(t, Favorable{Primary: saju.Metal, Secondary: saju.Wood, Unfavorable: saju.Fire},
		ResolveFavorable(saju.Earth, Strong))
	assert.Equal(t, Favorable{Primary: saju.Water, Secondary: saju.Wood, Unfavorable: saju.Metal},
		ResolveFavorable(saju.Wood, VeryWeak))
	assert.Equal(t, Favorable{Primary: saju.Water, Secondary: saju.Wood, Unfavorable: saju.Metal},
		ResolveFavorable(saju.Wood, Balanced))
}

func TestStrengthCategoryText(t *testing.T) {
	out, err := VeryWeak.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "태약", string(out))

	var back StrengthCategory
	require.NoError(t, back.UnmarshalText([]byte("중화")))
	assert.Equal(t, Balanced, back)
	assert.Error(t, back.UnmarshalText([]byte("nope")))
}
