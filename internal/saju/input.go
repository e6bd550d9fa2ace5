package saju

import (
	"fmt"
	"strings"
)

// Gender selects the luck-cycle direction.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// CalendarType tells whether the birth date is solar or lunar.
type CalendarType string

const (
	Solar CalendarType = "solar"
	Lunar CalendarType = "lunar"
)

// UnknownHour is the hour token for an unknown birth time.
const UnknownHour = "모름"

// BirthInput is one birth-data submission.
type BirthInput struct {
	Year      int          `json:"year" yaml:"year"`
	Month     int          `json:"month" yaml:"month"`
	Day       int          `json:"day" yaml:"day"`
	Hour      string       `json:"hour" yaml:"hour"`
	Calendar  CalendarType `json:"calendarType" yaml:"calendar_type"`
	LeapMonth bool         `json:"isLeapMonth" yaml:"is_leap_month"`
	Gender    Gender       `json:"gender" yaml:"gender"`
}

// Normalize fills the optional fields with their defaults: solar calendar,
// no leap month.
func (in BirthInput) Normalize() BirthInput {
	if in.Calendar == "" {
		in.Calendar = Solar
	}
	in.Hour = strings.TrimSpace(in.Hour)
	if in.Calendar == Solar {
		in.LeapMonth = false
	}
	return in
}

// Validate checks that every required field is present and in range. It
// does not check that the date exists in the calendar.
func (in BirthInput) Validate() error {
	var missing []string
	if in.Year == 0 {
		missing = append(missing, "year")
	}
	if in.Month == 0 {
		missing = append(missing, "month")
	}
	if in.Day == 0 {
		missing = append(missing, "day")
	}
	if in.Hour == "" {
		missing = append(missing, "hour")
	}
	if in.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return &OpError{Op: "validate input", Kind: KindInvalidInput,
			Err: fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))}
	}

	switch {
	case in.Gender != Male && in.Gender != Female:
		return invalidInput("gender %q", in.Gender)
	case in.Calendar != "" && in.Calendar != Solar && in.Calendar != Lunar:
		return invalidInput("calendar type %q", in.Calendar)
	case in.Year < 1 || in.Year > 9999:
		return invalidInput("year %d", in.Year)
	case in.Month < 1 || in.Month > 12:
		return invalidInput("month %d", in.Month)
	case in.Day < 1 || in.Day > 31:
		return invalidInput("day %d", in.Day)
	}
	return nil
}

func invalidInput(format string, args ...any) error {
	return &OpError{Op: "validate input", Kind: KindInvalidInput,
		Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)}
}
