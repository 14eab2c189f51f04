package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrProjectWbsNotUnique        = errors.New("the WBS code is already in use by another project")
	ErrProjectEndBeforeStart      = errors.New("the project end month must not be before the start month")
	ErrProjectDiscountOutOfRange  = errors.New("the project discount must be between 0 and 100")
	ErrAllocationNotUnique        = errors.New("an allocation for this roster member and month already exists in this forecast version")
	ErrAllocationDaysNegative     = errors.New("allocated days must not be negative")
	ErrGlobalRateLevelNotUnique   = errors.New("a global rate for this level already exists")
	ErrProjectRateLevelNotUnique  = errors.New("a project rate for this level already exists")
	ErrBillingMonthNotUnique      = errors.New("a billing amount for this month already exists")
	ErrExpenseMonthNotUnique      = errors.New("an expense amount for this month already exists")
	ErrSnapshotMonthNotUnique     = errors.New("a snapshot for this month already exists")
	ErrForecastVersionNotUnique   = errors.New("this forecast version number already exists for the project")
	ErrRosterMonthlyCostsNegative = errors.New("roster cost components must not be negative")
)
