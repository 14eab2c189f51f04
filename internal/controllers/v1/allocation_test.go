package v1_test

import (
	"net/http"

	v1 "github.com/forecast-ledger/backend/internal/controllers/v1"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/forecast-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsAllocations() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/allocations", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("OPTIONS, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateAllocations() {
	_ = suite.createTestGlobalRate("SC", 500)

	project := suite.createTestProject(v1.ProjectEditable{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 3),
	})
	version := suite.latestVersion(project.ID)
	member := suite.createTestRosterMember(v1.RosterMemberEditable{Level: "SC"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		{
			ForecastVersionID: version.ID,
			RosterMemberID:    member.ID,
			Month:             types.NewMonth(2026, 1),
			AllocatedDays:     decimal.NewFromInt(10),
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().Nil(response.Data[0].Error)

	// The write recalculates the snapshots: 10 days at the project rate
	// of 500
	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 3)
	suite.Assert().True(snapshots[0].Wip.Equal(decimal.NewFromInt(5000)), "WIP is %s, expected 5000", snapshots[0].Wip)
	suite.Assert().True(snapshots[2].Wip.Equal(decimal.NewFromInt(5000)))
}

func (suite *TestSuiteStandard) TestCreateAllocationsReplacesDays() {
	_ = suite.createTestGlobalRate("SC", 500)

	project := suite.createTestProject(v1.ProjectEditable{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 2),
	})
	version := suite.latestVersion(project.ID)
	member := suite.createTestRosterMember(v1.RosterMemberEditable{Level: "SC"})

	editable := v1.AllocationEditable{
		ForecastVersionID: version.ID,
		RosterMemberID:    member.ID,
		Month:             types.NewMonth(2026, 1),
		AllocatedDays:     decimal.NewFromInt(10),
	}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{editable})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// A second write for the same key replaces the days
	editable.AllocatedDays = decimal.NewFromInt(4)
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{editable})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 2)
	suite.Assert().True(snapshots[0].Wip.Equal(decimal.NewFromInt(2000)), "WIP is %s, expected 2000", snapshots[0].Wip)
}

func (suite *TestSuiteStandard) TestCreateAllocationsInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", `{ "invalid`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
