package report

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/narrative"
	"github.com/f3rmion/saju/internal/saju"
	"github.com/f3rmion/saju/internal/store"
)

func reading(t *testing.T, hour string) *engine.Reading {
	t.Helper()
	e := engine.New(calendar.NewLunarAdapter())
	r, err := e.Compute(saju.BirthInput{Year: 2000, Month: 1, Day: 1, Hour: hour, Gender: saju.Male})
	require.NoError(t, err)
	return r
}

func plain() *Renderer {
	r := New(nil, Options{})
	r.now = func() time.Time { return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestReading(t *testing.T) {
	rd := reading(t, "오시정 (12:00~12:30)")

	var buf bytes.Buffer
	require.NoError(t, plain().Reading(&buf, rd))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	for _, want := range []string{"2000-01-01 양력", "시주", "일주", "월주", "년주", "戊", "午", "대운", rd.Lunar.Text} {
		assert.Contains(t, out, want)
	}

	def := archetype.Default().MustGet(rd.Archetype.ID)
	assert.Contains(t, out, def.Hanja)
	assert.Contains(t, out, rd.Archetype.MatchReason)
	for _, l := range rd.Archetype.DetectionLines {
		assert.Contains(t, out, l)
	}

	current, ok := rd.LuckAt(2030)
	require.True(t, ok)
	assert.Contains(t, out, "▶ "+current.StemBranch.Hanja())
}

func TestReadingUnknownHour(t *testing.T) {
	rd := reading(t, saju.UnknownHour)
	require.False(t, rd.Chart.HasHour())

	var buf bytes.Buffer
	require.NoError(t, plain().Reading(&buf, rd))

	var stems string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "천간") {
			stems = line
		}
	}
	require.NotEmpty(t, stems)
	assert.Contains(t, stems, "-")
	assert.Contains(t, buf.String(), saju.UnknownHour)
}

func TestReadingRomanized(t *testing.T) {
	r := New(nil, Options{Romanize: true})
	var buf bytes.Buffer
	require.NoError(t, r.Reading(&buf, reading(t, "오시정 (12:00~12:30)")))
	assert.Contains(t, buf.String(), "병음")
	assert.Contains(t, buf.String(), "wù wǔ")
}

func TestRomanize(t *testing.T) {
	r := NewRomanizer()
	assert.Equal(t, "jiǎ zǐ", r.Romanize("甲子"))
	assert.Equal(t, "rén zǐ guǐ hài", r.Romanize("壬子癸亥"))
	assert.Equal(t, "mù", r.Romanize("木"))
	assert.Equal(t, "", r.Romanize("abc"))

	for _, c := range "甲乙丙丁戊己庚辛壬癸子丑寅卯辰巳午未申酉戌亥" {
		assert.NotEmpty(t, cycleReadings[c], string(c))
	}
}

func TestSummaries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plain().Summaries(&buf, nil))
	assert.Contains(t, buf.String(), "저장된 풀이가 없습니다.")

	buf.Reset()
	list := []store.Summary{{
		ID:            "0123456789abcdef",
		CreatedAt:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
		Input:         saju.BirthInput{Year: 1990, Month: 5, Day: 17, Calendar: saju.Lunar, Gender: saju.Female},
		Archetype:     archetype.GwiMun,
		AffinityScore: 72,
	}}
	require.NoError(t, plain().Summaries(&buf, list))
	out := buf.String()
	assert.Contains(t, out, "01234567 ")
	assert.NotContains(t, out, "89abcdef")
	assert.Contains(t, out, "2026-03-01 09:30")
	assert.Contains(t, out, "1990-05-17 음력 여")
	assert.Contains(t, out, archetype.Default().MustGet(archetype.GwiMun).Hanja)
	assert.Contains(t, out, " 72%")
}

func TestArchetypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plain().Archetypes(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(archetype.IDs()))
	for i, def := range archetype.Default().All() {
		assert.Contains(t, lines[i], string(def.ID))
	}
}

func TestHours(t *testing.T) {
	var buf bytes.Buffer
	labels := calendar.HourLabels()
	require.NoError(t, plain().Hours(&buf, labels))
	out := buf.String()
	for _, l := range labels {
		assert.Contains(t, out, l.Label)
	}
	assert.Contains(t, out, "시주 없이 계산")
}

func TestSections(t *testing.T) {
	sections := narrative.Merge(narrative.StartMarker("ilju_character") + "\n일주 풀이\n본문입니다.\n" + narrative.EndMarker("ilju_character"))

	var buf bytes.Buffer
	require.NoError(t, plain().Sections(&buf, sections))
	out := buf.String()
	assert.Contains(t, out, "일주 풀이")
	assert.Contains(t, out, "\n본문입니다.\n")
	assert.Contains(t, out, narrative.FallbackContent)
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 4))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 1, color.Gray{Y: 255})
	img.SetGray(2, 2, color.Gray{Y: 255})
	img.SetGray(2, 3, color.Gray{Y: 255})

	assert.Equal(t, "▀▄ \n  █", halfBlocks(img, 3, 2))
}

func TestShrink(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	dst := shrink(src, 4, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), dst.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.InDelta(t, 200, int(dst.GrayAt(x, y).Y), 2)
		}
	}
}

func TestBannerWithoutInput(t *testing.T) {
	assert.Empty(t, Banner("", bannerCols, bannerRows))
	assert.Empty(t, Banner("甲", 0, bannerRows))
}

func TestArchetypeCounts(t *testing.T) {
	var buf bytes.Buffer
	counts := map[archetype.ID]int{archetype.GwiMun: 3, archetype.CheBaek: 1}
	require.NoError(t, plain().ArchetypeCounts(&buf, counts))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(archetype.IDs())+1)
	assert.Contains(t, lines[len(lines)-1], "4")
	gwiMun := archetype.Default().MustGet(archetype.GwiMun)
	for _, l := range lines {
		if strings.Contains(l, gwiMun.Hanja) {
			assert.Contains(t, l, "███")
		}
	}
}
