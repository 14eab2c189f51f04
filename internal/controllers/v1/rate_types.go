package v1

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// GlobalRateEditable represents all user configurable parameters
type GlobalRateEditable struct {
	Level       string          `json:"level" example:"SC" default:""`
	NominalRate decimal.Decimal `json:"nominalRate" example:"500"` // Daily rate before discount
}

func (editable GlobalRateEditable) model() models.GlobalRate {
	return models.GlobalRate{
		Level:       editable.Level,
		NominalRate: editable.NominalRate,
	}
}

type GlobalRate struct {
	models.DefaultModel
	GlobalRateEditable
}

func newGlobalRate(model models.GlobalRate) GlobalRate {
	return GlobalRate{
		DefaultModel: model.DefaultModel,
		GlobalRateEditable: GlobalRateEditable{
			Level:       model.Level,
			NominalRate: model.NominalRate,
		},
	}
}

type GlobalRateListResponse struct {
	Data  []GlobalRate `json:"data"`                                                          // List of global rates
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GlobalRateCreateResponse struct {
	Data  []GlobalRateResponse `json:"data"`                                                          // List of the created global rates or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *GlobalRateCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, GlobalRateResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GlobalRateResponse struct {
	Data  *GlobalRate `json:"data"`                                                          // Data for the global rate
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
