package v1_test

import (
	"net/http"

	v1 "github.com/forecast-ledger/backend/internal/controllers/v1"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/forecast-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsBillings() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/billings", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("OPTIONS, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateBillings() {
	project := suite.createTestProject(v1.ProjectEditable{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 3),
	})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/billings", []v1.BillingEditable{
		{ProjectID: project.ID, Month: types.NewMonth(2026, 1), Amount: decimal.NewFromInt(1000)},
		{ProjectID: project.ID, Month: types.NewMonth(2026, 2), Amount: decimal.NewFromInt(500)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BillingCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)

	// The write recalculates the snapshots with cumulative billings
	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 3)
	suite.Assert().True(snapshots[0].CumulativeBillings.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(snapshots[1].CumulativeBillings.Equal(decimal.NewFromInt(1500)))
	suite.Assert().True(snapshots[2].CumulativeBillings.Equal(decimal.NewFromInt(1500)))
	suite.Assert().True(snapshots[1].MonthlyBillings.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestCreateBillingsReplacesAmount() {
	project := suite.createTestProject(v1.ProjectEditable{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 2),
	})

	first := v1.BillingEditable{ProjectID: project.ID, Month: types.NewMonth(2026, 1), Amount: decimal.NewFromInt(1000)}
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/billings", []v1.BillingEditable{first})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	first.Amount = decimal.NewFromInt(1500)
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/billings", []v1.BillingEditable{first})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 2)
	suite.Assert().True(snapshots[0].CumulativeBillings.Equal(decimal.NewFromInt(1500)), "cumulative billings are %s, expected 1500", snapshots[0].CumulativeBillings)
}

func (suite *TestSuiteStandard) TestCreateExpenses() {
	project := suite.createTestProject(v1.ProjectEditable{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 2),
	})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{
		{ProjectID: project.ID, Month: types.NewMonth(2026, 1), Amount: decimal.NewFromInt(300)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	snapshots := suite.snapshotsOf(project.ID)
	suite.Require().Len(snapshots, 2)
	suite.Assert().True(snapshots[0].DirectExpenses.Equal(decimal.NewFromInt(300)))
	suite.Assert().True(snapshots[1].DirectExpenses.Equal(decimal.NewFromInt(300)))

	// NSR subtracts the direct expenses
	suite.Assert().True(snapshots[0].Nsr.Equal(decimal.NewFromInt(-300)), "NSR is %s, expected -300", snapshots[0].Nsr)
}

func (suite *TestSuiteStandard) TestCreateExpensesUnknownProject() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{
		{Month: types.NewMonth(2026, 1), Amount: decimal.NewFromInt(300)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
