package engine

import (
	"go.uber.org/zap/zapcore"

	"github.com/f3rmion/saju/internal/saju"
)

type inputFields saju.BirthInput

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (in inputFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("year", in.Year)
	enc.AddInt("month", in.Month)
	enc.AddInt("day", in.Day)
	enc.AddString("hour", in.Hour)
	enc.AddString("calendar", string(in.Calendar))
	enc.AddBool("leapMonth", in.LeapMonth)
	enc.AddString("gender", string(in.Gender))
	return nil
}
