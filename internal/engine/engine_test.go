package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/luck"
	"github.com/f3rmion/saju/internal/saju"
)

// fakeAdapter derives a consistent raw conversion from the request date
// arithmetically, so each date maps to its own chart.
type fakeAdapter struct {
	mu   sync.Mutex
	reqs []calendar.Request
	err  error
}

func cycleAt(n int) saju.StemBranch {
	return saju.FromIndex(((n % saju.CycleLength) + saju.CycleLength) % saju.CycleLength)
}

func (f *fakeAdapter) Convert(req calendar.Request) (calendar.Raw, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.err != nil {
		return calendar.Raw{}, f.err
	}

	year := cycleAt(req.Year - 4)
	month := cycleAt(req.Year*12 + req.Month)
	day := cycleAt(req.Year*372 + req.Month*31 + req.Day)
	hour := cycleAt(day.Index()*12 + req.Hour/2)

	dir := luck.DirectionOf(req.Gender, year.Stem)
	raw := calendar.Raw{
		Year:  year.Hanja(),
		Month: month.Hanja(),
		Day:   day.Hanja(),
		Hour:  hour.Hanja(),
		Lunar: calendar.NewLunarDate(req.Year, req.Month, req.Day),
		Palaces: calendar.RawPalaces{
			Conception: month.Step(1).Hanja(),
			Life:       hour.Step(5).Hanja(),
			Body:       hour.Step(7).Hanja(),
		},
		Luck: calendar.RawLuck{Forward: dir == luck.Forward, StartAge: 3},
	}
	for i := 0; i < 8; i++ {
		startAge := 3 + 10*i
		p := calendar.RawPeriod{
			StartAge:   startAge,
			EndAge:     startAge + 9,
			StartYear:  req.Year + startAge - 1,
			EndYear:    req.Year + startAge + 8,
			StemBranch: month.Step(dir.Step() * (i + 1)).Hanja(),
		}
		for y := p.StartYear; y <= p.EndYear; y++ {
			p.Years = append(p.Years, calendar.RawYear{Year: y, Age: y - req.Year + 1, StemBranch: cycleAt(y - 4).Hanja()})
		}
		raw.Luck.Periods = append(raw.Luck.Periods, p)
	}
	return raw, nil
}

func input(y, m, d int) saju.BirthInput {
	return saju.BirthInput{Year: y, Month: m, Day: d, Hour: "오시정 (12:00~12:30)", Gender: saju.Female}
}

func TestComputeDeterministic(t *testing.T) {
	e := New(&fakeAdapter{})

	a, err := e.Compute(input(1990, 5, 17))
	require.NoError(t, err)
	b, err := e.Compute(input(1990, 5, 17))
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("readings differ (-first +second):\n%s", diff)
	}

	assert.Equal(t, Version, a.EngineVersion)
	assert.Equal(t, saju.Solar, a.Input.Calendar)
	require.NotNil(t, a.Chart.Hour)
	assert.Equal(t, a.Chart.DayMaster(), a.DayMaster.Stem)
	assert.Equal(t, a.Chart.Year.Branch().Zodiac(), a.Zodiac)
	assert.True(t, a.Archetype.ID.Valid())
	assert.Len(t, a.Luck.Periods, 8)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"engineVersion":"3.0.0"`)
}

func TestComputeInvalidInput(t *testing.T) {
	fa := &fakeAdapter{}
	e := New(fa)

	_, err := e.Compute(saju.BirthInput{Month: 1, Day: 1, Gender: saju.Male})
	require.Error(t, err)
	assert.True(t, saju.IsKind(err, saju.KindInvalidInput))
	assert.ErrorIs(t, err, saju.ErrInvalidInput)
	assert.Empty(t, fa.reqs)
}

func TestComputeUnknownHour(t *testing.T) {
	fa := &fakeAdapter{}
	e := New(fa)

	in := input(1985, 11, 2)
	in.Hour = saju.UnknownHour
	r, err := e.Compute(in)
	require.NoError(t, err)

	assert.Nil(t, r.Chart.Hour)
	assert.True(t, r.Time.Unknown)
	require.Len(t, fa.reqs, 1)
	assert.Equal(t, calendar.NoonHour, fa.reqs[0].Hour)
	assert.Empty(t, r.Special.ByPillar.At(saju.PositionHour))
}

func TestComputeAdapterFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cause := &saju.OpError{Op: "convert date", Kind: saju.KindAdapterFailure, Err: saju.ErrAdapterFailure}
	e := New(&fakeAdapter{err: cause}, WithLogger(zap.New(core)))

	_, err := e.Compute(input(2001, 1, 1))
	assert.ErrorIs(t, err, saju.ErrAdapterFailure)
	assert.Equal(t, 1, logs.FilterMessage("calendar conversion failed").Len())
}

func TestComputeInvalidDateNotLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cause := &saju.OpError{Op: "convert date", Kind: saju.KindInvalidCalendarDate, Err: saju.ErrInvalidCalendarDate}
	e := New(&fakeAdapter{err: cause}, WithLogger(zap.New(core)))

	_, err := e.Compute(input(2023, 2, 30))
	assert.True(t, saju.IsKind(err, saju.KindInvalidCalendarDate))
	assert.Zero(t, logs.Len())
}

// reversedLuck reports the luck cycle in the wrong direction.
type reversedLuck struct{ fakeAdapter }

func (a *reversedLuck) Convert(req calendar.Request) (calendar.Raw, error) {
	raw, err := a.fakeAdapter.Convert(req)
	raw.Luck.Forward = !raw.Luck.Forward
	return raw, err
}

func TestComputeRejectedLuckKeepsReading(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := New(&reversedLuck{}, WithLogger(zap.New(core)))

	r, err := e.Compute(input(1990, 5, 17))
	require.NoError(t, err)
	assert.Empty(t, r.Luck.Periods)
	assert.Equal(t, luck.DirectionOf(saju.Female, r.Chart.Year.Stem()), r.Luck.Direction)
	assert.True(t, r.Archetype.ID.Valid())
	assert.Equal(t, 1, logs.FilterMessage("luck cycle rejected").Len())

	_, ok := r.LuckAt(1992)
	assert.False(t, ok)

	out, err := json.Marshal(r.Luck)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"periods":[]`)
}

func TestLeapFallbackIsForwarded(t *testing.T) {
	fa := &fakeAdapter{}
	e := New(fa, WithLeapFallback(true))

	in := input(2024, 3, 1)
	in.Calendar = saju.Lunar
	in.LeapMonth = true
	_, err := e.Compute(in)
	require.NoError(t, err)
	require.Len(t, fa.reqs, 1)
	assert.True(t, fa.reqs[0].LeapFallback)
	assert.True(t, fa.reqs[0].LeapMonth)
}

func TestLuckAt(t *testing.T) {
	r, err := New(&fakeAdapter{}).Compute(input(1990, 5, 17))
	require.NoError(t, err)

	p, ok := r.LuckAt(1992)
	require.True(t, ok)
	assert.Equal(t, 3, p.StartAge)

	_, ok = r.LuckAt(1980)
	assert.False(t, ok)
}

func TestComputeBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(&fakeAdapter{})
	var inputs []saju.BirthInput
	for i := 0; i < 24; i++ {
		inputs = append(inputs, input(1970+i, 1+i%12, 1+i%28))
	}
	inputs[5].Year = 0

	results, err := e.ComputeBatch(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
		if i == 5 {
			assert.True(t, saju.IsKind(res.Err, saju.KindInvalidInput))
			assert.Nil(t, res.Reading)
			continue
		}
		require.NoError(t, res.Err)
		want, err := e.Compute(inputs[i])
		require.NoError(t, err)
		if diff := cmp.Diff(want, res.Reading); diff != "" {
			t.Errorf("item %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestComputeBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fa := &fakeAdapter{}
	results, err := New(fa).ComputeBatch(ctx, []saju.BirthInput{input(2000, 1, 1), input(2000, 1, 2)}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, context.Canceled))
	}
	assert.Empty(t, fa.reqs)
}

func TestComputeWithLunarAdapter(t *testing.T) {
	e := New(calendar.NewLunarAdapter())
	r, err := e.Compute(saju.BirthInput{Year: 2000, Month: 1, Day: 1, Hour: "오시정 (12:00~12:30)", Gender: saju.Male})
	require.NoError(t, err)

	assert.Equal(t, "戊午", r.Chart.Day.StemBranch.Hanja())
	assert.Equal(t, saju.StemMu, r.DayMaster.Stem)
	assert.Equal(t, luck.Backward, r.Luck.Direction)
	assert.Equal(t, 1999, r.Lunar.Year)
}
