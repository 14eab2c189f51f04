package models

import (
	"time"

	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Override carries manual replacement values for one month of a project.
// Only confirmed overrides act as calculation anchors; unconfirmed rows
// are drafts and are ignored by the calculator.
type Override struct {
	DefaultModel
	ProjectID uuid.UUID   `json:"projectId" gorm:"index"`
	Project   Project     `json:"-"`
	Month     types.Month `json:"month" example:"2026-01-01T00:00:00.000000Z"`
	Confirmed bool        `json:"confirmed"`

	OpeningBalance decimal.NullDecimal `json:"openingBalance" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Billings       decimal.NullDecimal `json:"billings" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Wip            decimal.NullDecimal `json:"wip" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Expenses       decimal.NullDecimal `json:"expenses" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Cost           decimal.NullDecimal `json:"cost" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Nsr            decimal.NullDecimal `json:"nsr" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	Margin         decimal.NullDecimal `json:"margin" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	ConfirmedBy string     `json:"confirmedBy"`
}
