package shift

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrMalformedTime     = errors.New("malformed time input")
	ErrVersionConflict   = errors.New("shift was modified concurrently")
	ErrTooMuchContention = errors.New("too much contention updating shift")
)

// MalformedTimeError carries the offending value of a time string that is not "HH:MM".
type MalformedTimeError struct {
	Value string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed time input %q: expected HH:MM", e.Value)
}

func (e *MalformedTimeError) Unwrap() error {
	return ErrMalformedTime
}
