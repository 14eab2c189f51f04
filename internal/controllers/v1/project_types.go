package v1

import (
	"fmt"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProjectEditable represents all user configurable parameters
type ProjectEditable struct {
	Name           string          `json:"name" example:"Core banking migration" default:""`
	Wbs            string          `json:"wbs" example:"P.2026.0042" default:""` // WBS code, globally unique
	Start          types.Month     `json:"start" example:"2026-01-01T00:00:00.000000Z"`
	End            types.Month     `json:"end" example:"2026-12-01T00:00:00.000000Z"`
	ActualBudget   decimal.Decimal `json:"actualBudget" example:"100000"`
	Discount       decimal.Decimal `json:"discount" example:"20"` // Percentage, 0-100
	Recoverability decimal.Decimal `json:"recoverability" example:"0.95"`
	TargetMargin   decimal.Decimal `json:"targetMargin" example:"0.35"`
}

func (editable ProjectEditable) model() models.Project {
	return models.Project{
		Name:           editable.Name,
		Wbs:            editable.Wbs,
		Start:          editable.Start,
		End:            editable.End,
		ActualBudget:   editable.ActualBudget,
		Discount:       editable.Discount,
		Recoverability: editable.Recoverability,
		TargetMargin:   editable.TargetMargin,
	}
}

type ProjectLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/projects/3b1ea324-d438-4419-882a-2fc91d71772f"`
	Financials string `json:"financials" example:"https://example.com/api/v1/projects/3b1ea324-d438-4419-882a-2fc91d71772f/financials"`
	Snapshots  string `json:"snapshots" example:"https://example.com/api/v1/projects/3b1ea324-d438-4419-882a-2fc91d71772f/snapshots"`
}

type Project struct {
	models.DefaultModel
	ProjectEditable
	NominalBudget decimal.Decimal `json:"nominalBudget" example:"125000"` // Derived: ActualBudget / (1 - Discount/100)
	Links         ProjectLinks    `json:"links"`
}

func newProject(c *gin.Context, model models.Project) Project {
	url := httputil.RequestPathV1(c)

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			Name:           model.Name,
			Wbs:            model.Wbs,
			Start:          model.Start,
			End:            model.End,
			ActualBudget:   model.ActualBudget,
			Discount:       model.Discount,
			Recoverability: model.Recoverability,
			TargetMargin:   model.TargetMargin,
		},
		NominalBudget: model.NominalBudget,
		Links: ProjectLinks{
			Self:       fmt.Sprintf("%s/projects/%s", url, model.ID),
			Financials: fmt.Sprintf("%s/projects/%s/financials", url, model.ID),
			Snapshots:  fmt.Sprintf("%s/projects/%s/snapshots", url, model.ID),
		},
	}
}

type ProjectListResponse struct {
	Data       []Project   `json:"data"`                                                          // List of Projects
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProjectCreateResponse struct {
	Data  []ProjectResponse `json:"data"`                                                          // List of the created Projects or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *ProjectCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, ProjectResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the Project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Wbs    string `form:"wbs"`                        // By WBS code
	Search string `form:"search" filterField:"false"` // By string in name or WBS code
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Project returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Projects to return. Defaults to 50.
}

func (f ProjectQueryFilter) model() models.Project {
	return models.Project{
		Wbs: f.Wbs,
	}
}
