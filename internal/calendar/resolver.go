// Package calendar resolves birth-time labels and wraps the external
// solar/lunar conversion library behind the Adapter interface.
package calendar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/f3rmion/saju/internal/saju"
)

// LateNightPrefix marks labels in the 23:00–24:00 window (야자시).
const LateNightPrefix = "야자시"

// NoonHour is the neutral hour used when the birth time is unknown.
const NoonHour = 12

const minutesPerDay = 24 * 60

var rangePattern = regexp.MustCompile(`\((\d{2}):(\d{2})~(\d{2}):(\d{2})\)`)

// ResolvedTime is a concrete hour and minute, or the unknown sentinel.
type ResolvedTime struct {
	Hour      int  `json:"hour"`
	Minute    int  `json:"minute"`
	Unknown   bool `json:"isUnknown"`
	LateNight bool `json:"isLateNightBoundary"`
}

// Unknown is the resolved value of an unknown birth time.
var Unknown = ResolvedTime{Hour: -1, Minute: -1, Unknown: true}

// ResolveTime turns an hour label such as "인시초 (03:00~03:30)" into the
// midpoint of its range. Ranges that cross midnight wrap forward a day
// before averaging. The unknown token and labels without a readable range
// resolve to Unknown.
func ResolveTime(label string) ResolvedTime {
	label = strings.TrimSpace(label)
	if label == "" || label == saju.UnknownHour {
		return Unknown
	}

	m := rangePattern.FindStringSubmatch(label)
	if m == nil {
		return Unknown
	}
	nums := make([]int, 4)
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Unknown
		}
		nums[i] = n
	}
	if nums[0] > 23 || nums[2] > 24 || nums[1] > 59 || nums[3] > 59 {
		return Unknown
	}

	start := nums[0]*60 + nums[1]
	end := nums[2]*60 + nums[3]
	if end <= start {
		end += minutesPerDay
	}
	mid := (start + end) / 2

	return ResolvedTime{
		Hour:      (mid % minutesPerDay) / 60,
		Minute:    mid % 60,
		LateNight: strings.HasPrefix(label, LateNightPrefix),
	}
}

// ComputeHour returns the hour and minute used for conversion: the resolved
// midpoint, or noon when the time is unknown.
func (r ResolvedTime) ComputeHour() (int, int) {
	if r.Unknown {
		return NoonHour, 0
	}
	return r.Hour, r.Minute
}
