package v1

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingEditable represents all user configurable parameters
type BillingEditable struct {
	ProjectID uuid.UUID       `json:"projectId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Month     types.Month     `json:"month" example:"2026-03-01T00:00:00.000000Z"` // Always the first of the month
	Amount    decimal.Decimal `json:"amount" example:"15000"`
}

func (editable BillingEditable) model() models.Billing {
	return models.Billing{
		ProjectID: editable.ProjectID,
		Month:     editable.Month,
		Amount:    editable.Amount,
	}
}

type Billing struct {
	models.DefaultModel
	BillingEditable
}

func newBilling(model models.Billing) Billing {
	return Billing{
		DefaultModel: model.DefaultModel,
		BillingEditable: BillingEditable{
			ProjectID: model.ProjectID,
			Month:     model.Month,
			Amount:    model.Amount,
		},
	}
}

type BillingCreateResponse struct {
	Data  []BillingResponse `json:"data"`                                                          // List of the written billings or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *BillingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, BillingResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BillingResponse struct {
	Data  *Billing `json:"data"`                                                          // Data for the billing
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
