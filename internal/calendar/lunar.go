package calendar

import (
	"time"

	lunar "github.com/6tail/lunar-go/calendar"

	"github.com/f3rmion/saju/internal/saju"
)

// Sect values of the eight-char calendar. Sect 1 moves the day pillar to
// the next day from 23:00; sect 2 keeps the current day.
const (
	sectNextDay    = 1
	sectCurrentDay = 2
)

// Luck start ages are counted with sect 2 (exact days, hours and minutes to
// the next solar term).
const yunSect = 2

// LunarAdapter implements Adapter on github.com/6tail/lunar-go.
type LunarAdapter struct{}

// NewLunarAdapter creates the lunar-go backed adapter.
func NewLunarAdapter() *LunarAdapter {
	return &LunarAdapter{}
}

// Convert implements Adapter. The library panics on dates it cannot
// represent; those panics come back as adapter failures.
func (a *LunarAdapter) Convert(req Request) (raw Raw, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = Raw{}, adapterFailure(r)
		}
	}()

	l, fallback, err := a.lunarOf(req)
	if err != nil {
		return Raw{}, err
	}

	ec := l.GetEightChar()
	if req.LateNight {
		ec.SetSect(sectCurrentDay)
	} else {
		ec.SetSect(sectNextDay)
	}

	raw = Raw{
		Year:         ec.GetYear(),
		Month:        ec.GetMonth(),
		Day:          ec.GetDay(),
		Hour:         ec.GetTime(),
		Lunar:        NewLunarDate(l.GetYear(), l.GetMonth(), l.GetDay()),
		LeapFallback: fallback,
		Palaces: RawPalaces{
			Conception: ec.GetTaiYuan(),
			Life:       ec.GetMingGong(),
			Body:       ec.GetShenGong(),
		},
	}

	gender := 0
	if req.Gender == saju.Male {
		gender = 1
	}
	yun := ec.GetYunBySect(gender, yunSect)
	raw.Luck = RawLuck{
		Forward:  yun.IsForward(),
		StartAge: yun.GetStartYear(),
	}

	// The first entry covers the years before the cycle starts and has no
	// stem-branch of its own.
	for i, dy := range yun.GetDaYun() {
		if i == 0 {
			continue
		}
		p := RawPeriod{
			StartAge:   dy.GetStartAge(),
			EndAge:     dy.GetEndAge(),
			StartYear:  dy.GetStartYear(),
			EndYear:    dy.GetEndYear(),
			StemBranch: dy.GetGanZhi(),
		}
		for _, ln := range dy.GetLiuNian() {
			p.Years = append(p.Years, RawYear{
				Year:       ln.GetYear(),
				Age:        ln.GetAge(),
				StemBranch: ln.GetGanZhi(),
			})
		}
		raw.Luck.Periods = append(raw.Luck.Periods, p)
	}

	return raw, nil
}

func (a *LunarAdapter) lunarOf(req Request) (*lunar.Lunar, bool, error) {
	if req.Calendar != saju.Lunar {
		if !solarDateExists(req.Year, req.Month, req.Day) {
			return nil, false, invalidDate("solar %04d-%02d-%02d", req.Year, req.Month, req.Day)
		}
		s := lunar.NewSolar(req.Year, req.Month, req.Day, req.Hour, req.Minute, 0)
		return s.GetLunar(), false, nil
	}

	month := req.Month
	fallback := false
	if req.LeapMonth {
		month = -req.Month
		if lunar.NewLunarYear(req.Year).GetMonth(month) == nil {
			if !req.LeapFallback {
				return nil, false, invalidDate("lunar %d has no leap month %d", req.Year, req.Month)
			}
			month, fallback = req.Month, true
		}
	}

	lm := lunar.NewLunarYear(req.Year).GetMonth(month)
	if lm == nil {
		return nil, false, invalidDate("lunar %d has no month %d", req.Year, req.Month)
	}
	if req.Day > lm.GetDayCount() {
		return nil, false, invalidDate("lunar %d month %d has only %d days", req.Year, req.Month, lm.GetDayCount())
	}

	return lunar.NewLunar(req.Year, month, req.Day, req.Hour, req.Minute, 0), fallback, nil
}

func solarDateExists(y, m, d int) bool {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}
