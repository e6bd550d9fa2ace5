// Package chart turns the raw output of a calendar conversion into a
// fully derived four-pillar chart.
package chart

import (
	"fmt"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/saju"
)

// Build parses the raw pillar symbols and derives every pillar relative to
// the day-master. The hour pillar is attached only when the birth time is
// known.
func Build(t calendar.ResolvedTime, raw calendar.Raw) (saju.Chart, error) {
	year, err := parse("year", raw.Year)
	if err != nil {
		return saju.Chart{}, err
	}
	month, err := parse("month", raw.Month)
	if err != nil {
		return saju.Chart{}, err
	}
	day, err := parse("day", raw.Day)
	if err != nil {
		return saju.Chart{}, err
	}

	var hour *saju.StemBranch
	if !t.Unknown {
		h, err := parse("hour", raw.Hour)
		if err != nil {
			return saju.Chart{}, err
		}
		hour = &h
	}

	return saju.NewChart(year, month, day, hour), nil
}

// Compute runs the adapter for a validated input and builds its chart. It
// returns the raw conversion alongside so callers can read the lunar date
// and luck periods.
func Compute(a calendar.Adapter, in saju.BirthInput, leapFallback bool) (saju.Chart, calendar.Raw, calendar.ResolvedTime, error) {
	t := calendar.ResolveTime(in.Hour)
	raw, err := a.Convert(calendar.NewRequest(in, t, leapFallback))
	if err != nil {
		return saju.Chart{}, calendar.Raw{}, t, err
	}
	c, err := Build(t, raw)
	if err != nil {
		return saju.Chart{}, calendar.Raw{}, t, err
	}
	return c, raw, t, nil
}

func parse(pos, sym string) (saju.StemBranch, error) {
	sb, err := saju.ParseStemBranch(sym)
	if err != nil {
		return saju.StemBranch{}, &saju.OpError{
			Op:   "build chart",
			Kind: saju.KindAdapterFailure,
			Err:  fmt.Errorf("%w: %s pillar %q: %v", saju.ErrAdapterFailure, pos, sym, err),
		}
	}
	return sb, nil
}
