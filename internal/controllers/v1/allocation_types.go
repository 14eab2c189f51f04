package v1

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationEditable represents all user configurable parameters
type AllocationEditable struct {
	ForecastVersionID uuid.UUID       `json:"forecastVersionId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	RosterMemberID    uuid.UUID       `json:"rosterMemberId" example:"2fc91d71-772f-4419-882a-d4383b1ea324"`
	Month             types.Month     `json:"month" example:"2026-03-01T00:00:00.000000Z"` // Always the first of the month
	AllocatedDays     decimal.Decimal `json:"allocatedDays" example:"10.5"`
}

func (editable AllocationEditable) model() models.ResourceAllocation {
	return models.ResourceAllocation{
		ForecastVersionID: editable.ForecastVersionID,
		RosterMemberID:    editable.RosterMemberID,
		Month:             editable.Month,
		AllocatedDays:     editable.AllocatedDays,
	}
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable
}

func newAllocation(model models.ResourceAllocation) Allocation {
	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			ForecastVersionID: model.ForecastVersionID,
			RosterMemberID:    model.RosterMemberID,
			Month:             model.Month,
			AllocatedDays:     model.AllocatedDays,
		},
	}
}

type AllocationCreateResponse struct {
	Data  []AllocationResponse `json:"data"`                                                          // List of the written allocations or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AllocationResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
