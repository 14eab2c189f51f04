package v1

import (
	"fmt"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RosterMemberEditable represents all user configurable parameters
type RosterMemberEditable struct {
	FullName              string          `json:"fullName" example:"Maria Papadopoulou" default:""`
	Level                 string          `json:"level" example:"SC" default:""` // Seniority level, matched against rates
	MonthlySalary         decimal.Decimal `json:"monthlySalary" example:"2000"`
	EmployerContributions decimal.Decimal `json:"employerContributions" example:"500"`
	Cars                  decimal.Decimal `json:"cars" example:"300"`
	TicketRestaurant      decimal.Decimal `json:"ticketRestaurant" example:"100"`
	Metlife               decimal.Decimal `json:"metlife" example:"50"`
}

func (editable RosterMemberEditable) model() models.RosterMember {
	return models.RosterMember{
		FullName:              editable.FullName,
		Level:                 editable.Level,
		MonthlySalary:         editable.MonthlySalary,
		EmployerContributions: editable.EmployerContributions,
		Cars:                  editable.Cars,
		TicketRestaurant:      editable.TicketRestaurant,
		Metlife:               editable.Metlife,
	}
}

type RosterMemberLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/roster/3b1ea324-d438-4419-882a-2fc91d71772f"`
}

type RosterMember struct {
	models.DefaultModel
	RosterMemberEditable
	DailyCost decimal.Decimal   `json:"dailyCost" example:"215.74"` // Derived from the 14-salary monthly cost over 18 working days
	Links     RosterMemberLinks `json:"links"`
}

func newRosterMember(c *gin.Context, model models.RosterMember) RosterMember {
	url := httputil.RequestPathV1(c)

	return RosterMember{
		DefaultModel: model.DefaultModel,
		RosterMemberEditable: RosterMemberEditable{
			FullName:              model.FullName,
			Level:                 model.Level,
			MonthlySalary:         model.MonthlySalary,
			EmployerContributions: model.EmployerContributions,
			Cars:                  model.Cars,
			TicketRestaurant:      model.TicketRestaurant,
			Metlife:               model.Metlife,
		},
		DailyCost: model.DailyCost(),
		Links: RosterMemberLinks{
			Self: fmt.Sprintf("%s/roster/%s", url, model.ID),
		},
	}
}

type RosterMemberListResponse struct {
	Data       []RosterMember `json:"data"`                                                          // List of roster members
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type RosterMemberCreateResponse struct {
	Data  []RosterMemberResponse `json:"data"`                                                          // List of the created roster members or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RosterMemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RosterMemberResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RosterMemberResponse struct {
	Data  *RosterMember `json:"data"`                                                          // Data for the roster member
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RosterMemberQueryFilter struct {
	Level  string `form:"level"`                      // By seniority level
	Search string `form:"search" filterField:"false"` // By string in the full name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first member returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of members to return. Defaults to 50.
}

func (f RosterMemberQueryFilter) model() models.RosterMember {
	return models.RosterMember{
		Level: f.Level,
	}
}
