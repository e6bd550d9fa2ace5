package luck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/saju"
)

func chartOf(t *testing.T, year, month, day string) saju.Chart {
	t.Helper()
	parse := func(s string) saju.StemBranch {
		v, err := saju.ParseStemBranch(s)
		require.NoError(t, err)
		return v
	}
	return saju.NewChart(parse(year), parse(month), parse(day), nil)
}

// rawLuck fabricates library output stepping from the month pillar.
func rawLuck(month saju.StemBranch, forward bool, birthYear, startAge, n int) calendar.RawLuck {
	step := 1
	if !forward {
		step = -1
	}
	raw := calendar.RawLuck{Forward: forward, StartAge: startAge}
	sb := month
	for i := 0; i < n; i++ {
		sb = sb.Step(step)
		start := startAge + 10*i
		p := calendar.RawPeriod{
			StartAge:   start,
			EndAge:     start + 9,
			StartYear:  birthYear + start - 1,
			EndYear:    birthYear + start + 8,
			StemBranch: sb.Hanja(),
		}
		first := saju.FromIndex(p.StartYear - 4)
		for k := 0; k < 10; k++ {
			p.Years = append(p.Years, calendar.RawYear{
				Year:       p.StartYear + k,
				Age:        start + k,
				StemBranch: first.Step(k).Hanja(),
			})
		}
		raw.Periods = append(raw.Periods, p)
	}
	return raw
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, Forward, DirectionOf(saju.Male, saju.StemGap))
	assert.Equal(t, Backward, DirectionOf(saju.Male, saju.StemEul))
	assert.Equal(t, Backward, DirectionOf(saju.Female, saju.StemGap))
	assert.Equal(t, Forward, DirectionOf(saju.Female, saju.StemGye))
}

func TestBuildForward(t *testing.T) {
	c := chartOf(t, "甲子", "丙寅", "戊午")
	cycle, err := Build(c, saju.Male, rawLuck(c.Month.StemBranch, true, 1984, 3, 8))
	require.NoError(t, err)

	assert.Equal(t, Forward, cycle.Direction)
	assert.Equal(t, 3, cycle.StartAge)
	require.Len(t, cycle.Periods, 8)
	assert.Equal(t, "정묘", cycle.Periods[0].StemBranch.String())
	assert.Equal(t, "무진", cycle.Periods[1].StemBranch.String())
	assert.Len(t, cycle.Periods[0].Years, 10)

	p, ok := cycle.Current(25)
	require.True(t, ok)
	assert.Equal(t, 23, p.StartAge)
	_, ok = cycle.Current(1)
	assert.False(t, ok)
}

func TestBuildBackward(t *testing.T) {
	c := chartOf(t, "甲子", "丙寅", "戊午")
	cycle, err := Build(c, saju.Female, rawLuck(c.Month.StemBranch, false, 1984, 7, 3))
	require.NoError(t, err)

	assert.Equal(t, Backward, cycle.Direction)
	assert.Equal(t, "을축", cycle.Periods[0].StemBranch.String())
	assert.Equal(t, "갑자", cycle.Periods[1].StemBranch.String())
	assert.Equal(t, "계해", cycle.Periods[2].StemBranch.String())
}

func TestBuildRejectsDirectionMismatch(t *testing.T) {
	c := chartOf(t, "甲子", "丙寅", "戊午")
	_, err := Build(c, saju.Female, rawLuck(c.Month.StemBranch, true, 1984, 3, 2))
	require.Error(t, err)
	assert.True(t, saju.IsKind(err, saju.KindAdapterFailure))
}

func TestBuildRejectsBrokenSequence(t *testing.T) {
	c := chartOf(t, "甲子", "丙寅", "戊午")

	raw := rawLuck(c.Month.StemBranch, true, 1984, 3, 3)
	raw.Periods[1].StemBranch = "庚午"
	_, err := Build(c, saju.Male, raw)
	assert.ErrorIs(t, err, saju.ErrAdapterFailure)

	raw = rawLuck(c.Month.StemBranch, true, 1984, 3, 3)
	raw.Periods[2].StartAge = raw.Periods[1].StartAge
	raw.Periods[2].EndAge = raw.Periods[1].EndAge
	_, err = Build(c, saju.Male, raw)
	assert.ErrorIs(t, err, saju.ErrAdapterFailure)

	raw = rawLuck(c.Month.StemBranch, true, 1984, 3, 1)
	raw.Periods[0].Years[3].StemBranch = raw.Periods[0].Years[2].StemBranch
	_, err = Build(c, saju.Male, raw)
	assert.ErrorIs(t, err, saju.ErrAdapterFailure)

	raw = rawLuck(c.Month.StemBranch, true, 1984, 3, 1)
	raw.Periods[0].StemBranch = "bad"
	_, err = Build(c, saju.Male, raw)
	assert.ErrorIs(t, err, saju.ErrAdapterFailure)
}

func TestBuildEmpty(t *testing.T) {
	c := chartOf(t, "乙丑", "戊寅", "戊午")
	cycle, err := Build(c, saju.Female, calendar.RawLuck{Forward: true, StartAge: 5})
	require.NoError(t, err)
	assert.Empty(t, cycle.Periods)
	assert.NotNil(t, cycle.Periods)
}

func TestDirectionText(t *testing.T) {
	out, err := Backward.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "backward", string(out))

	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("forward")))
	assert.Equal(t, Forward, d)
	assert.Error(t, d.UnmarshalText([]byte("up")))
	assert.Equal(t, "역행", Backward.String())
}
