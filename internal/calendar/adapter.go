package calendar

import (
	"fmt"

	"github.com/f3rmion/saju/internal/saju"
)

// Adapter converts a resolved birth instant into raw stem-branch symbols
// and the raw luck-period list. Implementations must be synchronous and free
// of side effects, and must report a nonexistent date with an error of kind
// saju.KindInvalidCalendarDate.
type Adapter interface {
	Convert(req Request) (Raw, error)
}

// Request is one conversion.
type Request struct {
	Year      int
	Month     int
	Day       int
	Calendar  saju.CalendarType
	LeapMonth bool
	Hour      int
	Minute    int
	LateNight bool
	Gender    saju.Gender

	// LeapFallback converts an absent leap month as the regular month of
	// the same number instead of failing. The substitution is reported in
	// Raw.LeapFallback.
	LeapFallback bool
}

// NewRequest builds a conversion request from validated input and its
// resolved time.
func NewRequest(in saju.BirthInput, t ResolvedTime, leapFallback bool) Request {
	h, m := t.ComputeHour()
	return Request{
		Year:         in.Year,
		Month:        in.Month,
		Day:          in.Day,
		Calendar:     in.Calendar,
		LeapMonth:    in.LeapMonth,
		Hour:         h,
		Minute:       m,
		LateNight:    t.LateNight,
		Gender:       in.Gender,
		LeapFallback: leapFallback,
	}
}

// Raw is the unprocessed output of a conversion. Pillars are two-character
// hanja pairs such as "甲子".
type Raw struct {
	Year  string
	Month string
	Day   string
	Hour  string

	Lunar        LunarDate
	LeapFallback bool
	Palaces      RawPalaces
	Luck         RawLuck
}

// RawPalaces are the auxiliary palaces of the chart as hanja pairs.
type RawPalaces struct {
	Conception string // 태원
	Life       string // 명궁
	Body       string // 신궁
}

// LunarDate is the lunar calendar date of the birth.
type LunarDate struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Leap  bool   `json:"isLeapMonth"`
	Text  string `json:"lunarDateStr"`
}

// NewLunarDate builds a LunarDate from the library's signed month, where a
// negative month marks a leap month.
func NewLunarDate(year, signedMonth, day int) LunarDate {
	month, leap := signedMonth, false
	if signedMonth < 0 {
		month, leap = -signedMonth, true
	}
	prefix := ""
	if leap {
		prefix = "윤"
	}
	return LunarDate{
		Year:  year,
		Month: month,
		Day:   day,
		Leap:  leap,
		Text:  fmt.Sprintf("음력 %d년 %s%d월 %d일", year, prefix, month, day),
	}
}

// RawLuck is the luck-cycle output of the library.
type RawLuck struct {
	Forward  bool
	StartAge int
	Periods  []RawPeriod
}

// RawPeriod is one decade of the luck cycle.
type RawPeriod struct {
	StartAge   int
	EndAge     int
	StartYear  int
	EndYear    int
	StemBranch string
	Years      []RawYear
}

// RawYear is one year inside a luck period.
type RawYear struct {
	Year       int
	Age        int
	StemBranch string
}

func invalidDate(format string, args ...any) error {
	return &saju.OpError{
		Op:   "convert date",
		Kind: saju.KindInvalidCalendarDate,
		Err:  fmt.Errorf("%w: "+format, append([]any{saju.ErrInvalidCalendarDate}, args...)...),
	}
}

func adapterFailure(cause any) error {
	return &saju.OpError{
		Op:   "convert date",
		Kind: saju.KindAdapterFailure,
		Err:  fmt.Errorf("%w: %v", saju.ErrAdapterFailure, cause),
	}
}
