package models

import (
	"time"

	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotStatus is the workflow state of a monthly snapshot.
//
// Transitions are unidirectional: PENDING -> EDITABLE -> CONFIRMED.
// Per (project, forecast version) at most one snapshot is EDITABLE at
// any time.
//
// swagger:enum SnapshotStatus
type SnapshotStatus string

const (
	SnapshotPending   SnapshotStatus = "PENDING"
	SnapshotEditable  SnapshotStatus = "EDITABLE"
	SnapshotConfirmed SnapshotStatus = "CONFIRMED"
)

// ProjectMonthlySnapshot is the persisted ledger row for one month of a
// project and forecast version.
//
// Nsr and Margin are always derived from the other fields, never stored
// independently: Nsr = Wip + CumulativeBillings - OpeningBalance -
// DirectExpenses, Margin = (Nsr - OperationalCost) / Nsr (0 when Nsr is 0).
// Recalculation stops at CONFIRMED rows: once ConfirmedAt is set the row
// is never mutated again.
type ProjectMonthlySnapshot struct {
	DefaultModel
	ProjectID         uuid.UUID       `json:"projectId" gorm:"uniqueIndex:snapshot_project_version_month"`
	Project           Project         `json:"-"`
	ForecastVersionID uuid.UUID       `json:"forecastVersionId" gorm:"uniqueIndex:snapshot_project_version_month"`
	ForecastVersion   ForecastVersion `json:"-"`
	Month             types.Month     `json:"month" gorm:"uniqueIndex:snapshot_project_version_month" example:"2026-01-01T00:00:00.000000Z"`
	Status            SnapshotStatus  `json:"status" gorm:"default:PENDING" example:"EDITABLE"`

	OpeningBalance     decimal.Decimal `json:"openingBalance" gorm:"type:DECIMAL(20,8)" example:"100"`
	CumulativeBillings decimal.Decimal `json:"cumulativeBillings" gorm:"type:DECIMAL(20,8)" example:"30000"`
	Wip                decimal.Decimal `json:"wip" gorm:"type:DECIMAL(20,8)" example:"5000"`
	DirectExpenses     decimal.Decimal `json:"directExpenses" gorm:"type:DECIMAL(20,8)" example:"1200"`
	OperationalCost    decimal.Decimal `json:"operationalCost" gorm:"type:DECIMAL(20,8)" example:"20000"`

	MonthlyBillings    decimal.Decimal `json:"monthlyBillings" gorm:"type:DECIMAL(20,8)" example:"15000"`    // Billing of this month alone
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses" gorm:"type:DECIMAL(20,8)" example:"600"`      // Expense of this month alone
	CumulativeExpenses decimal.Decimal `json:"cumulativeExpenses" gorm:"type:DECIMAL(20,8)" example:"1200"`  // Running expense total
	Nsr                decimal.Decimal `json:"nsr" gorm:"type:DECIMAL(20,8)" example:"33800"`                // Always derived
	Margin             decimal.Decimal `json:"margin" gorm:"type:DECIMAL(20,8)" example:"0.408"`             // Always derived

	// Values prior to the first manual override, preserved so the
	// original calculation stays visible for audit and revert.
	OriginalOpeningBalance     decimal.NullDecimal `json:"originalOpeningBalance" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	OriginalCumulativeBillings decimal.NullDecimal `json:"originalCumulativeBillings" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	OriginalWip                decimal.NullDecimal `json:"originalWip" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	OriginalDirectExpenses     decimal.NullDecimal `json:"originalDirectExpenses" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`
	OriginalOperationalCost    decimal.NullDecimal `json:"originalOperationalCost" gorm:"type:DECIMAL(20,8)" swaggertype:"number"`

	IsOverridden bool       `json:"isOverridden"`
	OverriddenAt *time.Time `json:"overriddenAt"`
	OverriddenBy string     `json:"overriddenBy"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	ConfirmedBy string     `json:"confirmedBy"`
}
