package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrNoWorkers     = errors.New("no workers selected for the period")
)
