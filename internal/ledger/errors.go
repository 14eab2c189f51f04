package ledger

import (
	"errors"
)

var (
	ErrInvalidMonthRange    = errors.New("the end month must not be before the start month")
	ErrMonthNotEditable     = errors.New("the month is not currently editable")
	ErrDerivedFieldOverride = errors.New("NSR and margin are derived fields and cannot be overridden")
)
