package absence

import "errors"

var (
	ErrAbsenceNotFound     = errors.New("absence not found")
	ErrAbsenceTypeNotFound = errors.New("absence type not found")
)
