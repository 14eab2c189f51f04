package v1

import (
	"github.com/forecast-ledger/backend/internal/ledger"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

type SnapshotListResponse struct {
	Data  []models.ProjectMonthlySnapshot `json:"data"`                                                          // List of monthly snapshots
	Error *string                         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SnapshotResponse struct {
	Data  *models.ProjectMonthlySnapshot `json:"data"`                                                          // Data for the snapshot
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FinancialsResponse struct {
	Data  []ledger.MonthlyFact `json:"data"`                                                          // Calculated monthly facts for the whole project timeline
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ConfirmEditable is the request body for confirming a month.
type ConfirmEditable struct {
	ConfirmedBy string `json:"confirmedBy" example:"m.papadopoulou" default:""`
}

// OverrideEditable is the request body for overwriting snapshot values.
// Only the set fields are applied. NSR and margin are derived and cannot
// be set.
type OverrideEditable struct {
	OpeningBalance     decimal.NullDecimal `json:"openingBalance" swaggertype:"number"`
	CumulativeBillings decimal.NullDecimal `json:"cumulativeBillings" swaggertype:"number"`
	Wip                decimal.NullDecimal `json:"wip" swaggertype:"number"`
	DirectExpenses     decimal.NullDecimal `json:"directExpenses" swaggertype:"number"`
	OperationalCost    decimal.NullDecimal `json:"operationalCost" swaggertype:"number"`
	Nsr                decimal.NullDecimal `json:"nsr" swaggertype:"number"`
	Margin             decimal.NullDecimal `json:"margin" swaggertype:"number"`
	OverriddenBy       string              `json:"overriddenBy" example:"m.papadopoulou" default:""`
}

func (editable OverrideEditable) values() ledger.OverrideValues {
	return ledger.OverrideValues{
		OpeningBalance:     editable.OpeningBalance,
		CumulativeBillings: editable.CumulativeBillings,
		Wip:                editable.Wip,
		DirectExpenses:     editable.DirectExpenses,
		OperationalCost:    editable.OperationalCost,
		Nsr:                editable.Nsr,
		Margin:             editable.Margin,
	}
}
