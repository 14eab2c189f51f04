package models

import (
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is the direct expense amount of one month of a project.
// Same upsert semantics as Billing: one row per (project, month).
type Expense struct {
	DefaultModel
	ProjectID uuid.UUID       `json:"projectId" gorm:"uniqueIndex:expense_project_month"`
	Project   Project         `json:"-"`
	Month     types.Month     `json:"month" gorm:"uniqueIndex:expense_project_month" example:"2026-01-01T00:00:00.000000Z"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2500"`
}
