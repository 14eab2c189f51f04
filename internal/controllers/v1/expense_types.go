package v1

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	ProjectID uuid.UUID       `json:"projectId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Month     types.Month     `json:"month" example:"2026-03-01T00:00:00.000000Z"` // Always the first of the month
	Amount    decimal.Decimal `json:"amount" example:"600"`
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		ProjectID: editable.ProjectID,
		Month:     editable.Month,
		Amount:    editable.Amount,
	}
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
}

func newExpense(model models.Expense) Expense {
	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			ProjectID: model.ProjectID,
			Month:     model.Month,
			Amount:    model.Amount,
		},
	}
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the written expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ExpenseResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
