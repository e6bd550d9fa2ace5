package saju

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCalendarDate = errors.New("date does not exist in the calendar")
	ErrAdapterFailure      = errors.New("calendar conversion failed")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindInvalidCalendarDate ErrorKind = "invalid_calendar_date"
	KindAdapterFailure      ErrorKind = "adapter_failure"
)

// OpError wraps an underlying error with the failing operation and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// UserMessage returns the message shown to an end user for err.
func UserMessage(err error) string {
	switch {
	case IsKind(err, KindInvalidInput):
		return "모든 필드를 입력해주세요."
	case IsKind(err, KindInvalidCalendarDate):
		return "존재하지 않는 날짜입니다. 생년월일을 다시 확인해주세요."
	default:
		return "사주 계산 중 오류가 발생했습니다."
	}
}
