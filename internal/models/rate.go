package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GlobalRate is the shared nominal daily rate for a seniority level.
type GlobalRate struct {
	DefaultModel
	Level       string          `json:"level" gorm:"uniqueIndex" example:"SC"`
	NominalRate decimal.Decimal `json:"nominalRate" gorm:"type:DECIMAL(20,8)" example:"500"` // Daily rate before discount
}

// ProjectRate is the project-scoped rate for a seniority level. The
// nominal rate is snapshotted from the global rates when the project is
// created, and the actual daily rate carries the project discount:
// ActualDailyRate = NominalRate * (1 - discount/100).
type ProjectRate struct {
	DefaultModel
	ProjectID       uuid.UUID       `json:"projectId" gorm:"uniqueIndex:project_rate_project_level"`
	Project         Project         `json:"-"`
	Level           string          `json:"level" gorm:"uniqueIndex:project_rate_project_level" example:"SC"`
	NominalRate     decimal.Decimal `json:"nominalRate" gorm:"type:DECIMAL(20,8)" example:"500"`
	ActualDailyRate decimal.Decimal `json:"actualDailyRate" gorm:"type:DECIMAL(20,8)" example:"400"`
}

// ActualRate applies a discount percentage to a nominal daily rate.
func ActualRate(nominal, discount decimal.Decimal) decimal.Decimal {
	return nominal.Mul(decimal.NewFromInt(1).Sub(discount.Div(percentageFull)))
}
