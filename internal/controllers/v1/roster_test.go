package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/forecast-ledger/backend/internal/controllers/v1"
	"github.com/forecast-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsRoster() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/roster", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateRosterMember() {
	member := suite.createTestRosterMember(v1.RosterMemberEditable{
		FullName:              "Maria Papadopoulou",
		Level:                 "SC",
		MonthlySalary:         decimal.NewFromInt(2000),
		EmployerContributions: decimal.NewFromInt(500),
		Cars:                  decimal.NewFromInt(300),
		TicketRestaurant:      decimal.NewFromInt(100),
		Metlife:               decimal.NewFromInt(50),
	})

	// ((2500 * 14 / 12) + 450) / 18
	suite.Assert().True(member.DailyCost.Round(2).Equal(decimal.NewFromFloat(187.04)), "daily cost is %s, expected 187.04", member.DailyCost)
	suite.Assert().Contains(member.Links.Self, fmt.Sprintf("/v1/roster/%s", member.ID))
}

func (suite *TestSuiteStandard) TestCreateRosterMemberNegativeCost() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/roster", []v1.RosterMemberEditable{
		{FullName: "Maria Papadopoulou", Cars: decimal.NewFromInt(-1)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetRosterMembers() {
	_ = suite.createTestRosterMember(v1.RosterMemberEditable{FullName: "Maria Papadopoulou", Level: "SC"})
	_ = suite.createTestRosterMember(v1.RosterMemberEditable{FullName: "Nikos Ioannou", Level: "M"})

	for _, tt := range []struct {
		query string
		count int
	}{
		{"", 2},
		{"?level=SC", 1},
		{"?search=nikos", 1},
		{"?level=AP", 0},
	} {
		recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/roster"+tt.query, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.RosterMemberListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "wrong number of members for query %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestGetRosterMember() {
	member := suite.createTestRosterMember(v1.RosterMemberEditable{FullName: "Maria Papadopoulou"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/roster/%s", member.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RosterMemberResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Maria Papadopoulou", response.Data.FullName)
}
