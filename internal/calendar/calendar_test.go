package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/saju"
)

func TestResolveTime(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  ResolvedTime
	}{
		{"unknown token", "모름", Unknown},
		{"empty", "", Unknown},
		{"no range", "인시", Unknown},
		{"half hour", "인시초 (03:00~03:30)", ResolvedTime{Hour: 3, Minute: 15}},
		{"full hour", "오시정 (12:00~13:00)", ResolvedTime{Hour: 12, Minute: 30}},
		{"late night", "야자시초 (23:00~23:30)", ResolvedTime{Hour: 23, Minute: 15, LateNight: true}},
		{"crosses midnight", "야자시 (23:30~00:00)", ResolvedTime{Hour: 23, Minute: 45, LateNight: true}},
		{"wraps past midnight", "자시 (23:30~00:30)", ResolvedTime{Hour: 0, Minute: 0}},
		{"out of range", "이상 (25:00~26:00)", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTime(tt.label))
		})
	}
}

func TestComputeHour(t *testing.T) {
	h, m := Unknown.ComputeHour()
	assert.Equal(t, NoonHour, h)
	assert.Equal(t, 0, m)

	h, m = ResolveTime("묘시초 (05:00~06:00)").ComputeHour()
	assert.Equal(t, 5, h)
	assert.Equal(t, 30, m)
}

func TestHourLabels(t *testing.T) {
	labels := HourLabels()
	require.NotEmpty(t, labels)

	last := labels[len(labels)-1]
	assert.Equal(t, saju.UnknownHour, last.Label)
	assert.True(t, last.Time.Unknown)
	assert.Nil(t, last.Branch)

	for _, l := range labels[:len(labels)-1] {
		assert.False(t, l.Time.Unknown, l.Label)
		require.NotNil(t, l.Branch, l.Label)
	}

	require.Len(t, labels, 49)
	lateNight := labels[len(labels)-2]
	assert.True(t, lateNight.Time.LateNight)
	assert.Equal(t, saju.BranchJa, *lateNight.Branch)

	// The returned slice is a copy.
	labels[0].Label = "changed"
	assert.NotEqual(t, "changed", HourLabels()[0].Label)
}

func TestHourLabelsAreHalfHours(t *testing.T) {
	labels := HourLabels()
	for i, l := range labels[:len(labels)-1] {
		rt := l.Time
		assert.Contains(t, []int{15, 45}, rt.Minute, l.Label)
		// 자 spans 23:00~01:00; every later branch starts on an odd hour.
		assert.Equal(t, saju.Branch((rt.Hour+1)/2%saju.NumBranches), *l.Branch, l.Label)
		if i > 0 {
			prev := labels[i-1].Time
			assert.Equal(t, 30, rt.Hour*60+rt.Minute-prev.Hour*60-prev.Minute, l.Label)
		}
	}
	assert.Equal(t, "야자시초 (23:00~23:30)", labels[len(labels)-3].Label)
	assert.True(t, labels[len(labels)-3].Time.LateNight)
}

func TestParseHourLabelsRejectsUnknownBranch(t *testing.T) {
	_, err := parseHourLabels([]byte("hours:\n  - label: \"x (01:00~02:00)\"\n    branch: 용\n"))
	assert.Error(t, err)

	_, err = parseHourLabels([]byte("hours:\n  - label: \"x (01:00~02:00)\"\n"))
	assert.Error(t, err)
}

func TestNewLunarDate(t *testing.T) {
	d := NewLunarDate(2023, -2, 11)
	assert.Equal(t, LunarDate{Year: 2023, Month: 2, Day: 11, Leap: true, Text: "음력 2023년 윤2월 11일"}, d)

	d = NewLunarDate(1990, 4, 23)
	assert.False(t, d.Leap)
	assert.Equal(t, "음력 1990년 4월 23일", d.Text)
}

func TestNewRequestUsesNoonForUnknown(t *testing.T) {
	in := saju.BirthInput{Year: 2000, Month: 1, Day: 1, Hour: saju.UnknownHour, Calendar: saju.Solar, Gender: saju.Male}
	req := NewRequest(in, ResolveTime(in.Hour), false)
	assert.Equal(t, 12, req.Hour)
	assert.Equal(t, 0, req.Minute)
	assert.False(t, req.LateNight)
}

func TestLunarAdapterSolarDate(t *testing.T) {
	a := NewLunarAdapter()
	raw, err := a.Convert(Request{
		Year: 2000, Month: 1, Day: 1, Hour: 12, Minute: 30,
		Calendar: saju.Solar, Gender: saju.Male,
	})
	require.NoError(t, err)

	assert.Equal(t, "己卯", raw.Year)
	assert.Equal(t, "丙子", raw.Month)
	assert.Equal(t, "戊午", raw.Day)
	assert.Equal(t, "戊午", raw.Hour)
	assert.False(t, raw.LeapFallback)
	assert.Equal(t, 1999, raw.Lunar.Year)

	// 己 is a yin stem, so a male chart runs backward.
	assert.False(t, raw.Luck.Forward)
	require.NotEmpty(t, raw.Luck.Periods)
	for _, p := range raw.Luck.Periods {
		assert.NotEmpty(t, p.StemBranch)
	}
}

func TestLunarAdapterInvalidDates(t *testing.T) {
	a := NewLunarAdapter()

	_, err := a.Convert(Request{Year: 2023, Month: 2, Day: 30, Hour: 12, Calendar: saju.Solar, Gender: saju.Female})
	require.Error(t, err)
	assert.True(t, saju.IsKind(err, saju.KindInvalidCalendarDate))
	assert.ErrorIs(t, err, saju.ErrInvalidCalendarDate)

	// 2024 has no leap month.
	leap := Request{Year: 2024, Month: 3, Day: 1, Hour: 12, Calendar: saju.Lunar, LeapMonth: true, Gender: saju.Female}
	_, err = a.Convert(leap)
	assert.True(t, saju.IsKind(err, saju.KindInvalidCalendarDate))

	leap.LeapFallback = true
	raw, err := a.Convert(leap)
	require.NoError(t, err)
	assert.True(t, raw.LeapFallback)
	assert.False(t, raw.Lunar.Leap)
	assert.Equal(t, 3, raw.Lunar.Month)
}
