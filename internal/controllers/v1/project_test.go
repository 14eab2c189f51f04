package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/forecast-ledger/backend/internal/controllers/v1"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/forecast-ledger/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsProject() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/projects", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateProject() {
	_ = suite.createTestGlobalRate("SC", 500)

	project := suite.createTestProject(v1.ProjectEditable{
		Name:         "Core banking migration",
		ActualBudget: decimal.NewFromInt(100000),
		Discount:     decimal.NewFromInt(20),
		Start:        types.NewMonth(2026, 1),
		End:          types.NewMonth(2026, 3),
	})

	suite.Assert().True(project.NominalBudget.Equal(decimal.NewFromInt(125000)), "nominal budget is %s, expected 125000", project.NominalBudget)
	suite.Assert().Contains(project.Links.Self, fmt.Sprintf("/v1/projects/%s", project.ID))

	// Creation initializes one snapshot per month with the first editable
	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 3)
	suite.Assert().Equal(models.SnapshotEditable, snapshots[0].Status)
	suite.Assert().Equal(models.SnapshotPending, snapshots[1].Status)
	suite.Assert().Equal(models.SnapshotPending, snapshots[2].Status)

	// The global rates are snapshotted into project rates with the
	// discount applied
	var rates []models.ProjectRate
	suite.Require().Nil(models.DB.Where("project_id = ?", project.ID).Find(&rates).Error)
	suite.Require().Len(rates, 1)
	suite.Assert().True(rates[0].ActualDailyRate.Equal(decimal.NewFromInt(400)), "actual daily rate is %s, expected 400", rates[0].ActualDailyRate)
}

func (suite *TestSuiteStandard) TestCreateProjectDuplicateWbs() {
	_ = suite.createTestProject(v1.ProjectEditable{Wbs: "P.2026.0042"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", []v1.ProjectEditable{
		{Wbs: "P.2026.0042", Start: types.NewMonth(2026, 1), End: types.NewMonth(2026, 12)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.ProjectCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Contains(*response.Data[0].Error, "WBS code")
}

func (suite *TestSuiteStandard) TestCreateProjectInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", `{ "invalid`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetProjects() {
	_ = suite.createTestProject(v1.ProjectEditable{Name: "Payments platform", Wbs: "P.2026.0001"})
	_ = suite.createTestProject(v1.ProjectEditable{Name: "Data warehouse", Wbs: "P.2026.0002"})

	for _, tt := range []struct {
		query string
		count int
	}{
		{"", 2},
		{"?wbs=P.2026.0001", 1},
		{"?search=warehouse", 1},
		{"?search=P.2026", 2},
		{"?name=Payments", 1},
		{"?wbs=P.9999.0000", 0},
	} {
		recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/projects"+tt.query, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.ProjectListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "wrong number of projects for query %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestGetProjectsPagination() {
	for i := 0; i < 3; i++ {
		_ = suite.createTestProject(v1.ProjectEditable{})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/projects?limit=2", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ProjectListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2)
	suite.Require().NotNil(response.Pagination)
	suite.Assert().Equal(int64(3), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestGetProject() {
	project := suite.createTestProject(v1.ProjectEditable{Name: "Core banking migration"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/projects/%s", project.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ProjectResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Core banking migration", response.Data.Name)
}

func (suite *TestSuiteStandard) TestGetProjectNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/projects/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetProjectInvalidUUID() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/projects/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
