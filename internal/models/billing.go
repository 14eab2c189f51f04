package models

import (
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing is the amount billed to the client in one month of a project.
// One row per (project, month); a new write replaces the monthly amount,
// it is not additive.
type Billing struct {
	DefaultModel
	ProjectID uuid.UUID       `json:"projectId" gorm:"uniqueIndex:billing_project_month"`
	Project   Project         `json:"-"`
	Month     types.Month     `json:"month" gorm:"uniqueIndex:billing_project_month" example:"2026-01-01T00:00:00.000000Z"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"15000"`
}
