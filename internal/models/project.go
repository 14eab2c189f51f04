package models

import (
	"strings"

	"github.com/forecast-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is the top level resource of the ledger. Every allocation,
// rate, billing, expense and snapshot references it directly or through
// a forecast version.
//
// Start and End are month-granular: only year and month are significant.
type Project struct {
	DefaultModel
	Name           string          `json:"name" example:"Core banking migration"`
	Wbs            string          `json:"wbs" gorm:"uniqueIndex" example:"P.2026.0042"` // WBS code, globally unique
	Start          types.Month     `json:"start" example:"2026-01-01T00:00:00.000000Z"`
	End            types.Month     `json:"end" example:"2026-12-01T00:00:00.000000Z"`
	ActualBudget   decimal.Decimal `json:"actualBudget" gorm:"type:DECIMAL(20,8)" example:"100000"`
	NominalBudget  decimal.Decimal `json:"nominalBudget" gorm:"type:DECIMAL(20,8)" example:"125000"` // Derived: ActualBudget / (1 - Discount/100)
	Discount       decimal.Decimal `json:"discount" gorm:"type:DECIMAL(20,8)" example:"20"`          // Percentage, 0-100
	Recoverability decimal.Decimal `json:"recoverability" gorm:"type:DECIMAL(20,8)" example:"0.95"`
	TargetMargin   decimal.Decimal `json:"targetMargin" gorm:"type:DECIMAL(20,8)" example:"0.35"`
}

var percentageFull = decimal.NewFromInt(100)

// BeforeSave validates the date range and the discount, and derives
// NominalBudget from ActualBudget and Discount. A discount of 100 would
// divide by zero, so the nominal budget stays equal to the actual budget.
func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Wbs = strings.TrimSpace(p.Wbs)

	if p.Discount.IsNegative() || p.Discount.GreaterThan(percentageFull) {
		return ErrProjectDiscountOutOfRange
	}

	if p.End.Before(p.Start) {
		return ErrProjectEndBeforeStart
	}

	p.NominalBudget = p.ActualBudget
	if p.Discount.LessThan(percentageFull) {
		factor := decimal.NewFromInt(1).Sub(p.Discount.Div(percentageFull))
		p.NominalBudget = p.ActualBudget.Div(factor)
	}

	return nil
}

// Months returns every month of the project timeline, ascending.
func (p Project) Months() []types.Month {
	return p.Start.RangeThrough(p.End)
}
