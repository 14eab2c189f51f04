package models_test

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestProjectTrimWhitespace() {
	project := suite.createTestProject(models.Project{
		Name: " Core banking migration ",
		Wbs:  " P.2026.0042 ",
	})

	suite.Assert().Equal("Core banking migration", project.Name)
	suite.Assert().Equal("P.2026.0042", project.Wbs)
}

func (suite *TestSuiteStandard) TestProjectNominalBudget() {
	project := suite.createTestProject(models.Project{
		ActualBudget: decimal.NewFromInt(100000),
		Discount:     decimal.NewFromInt(20),
	})

	suite.Assert().True(project.NominalBudget.Equal(decimal.NewFromInt(125000)), "NominalBudget is %s, expected 125000", project.NominalBudget)
}

func (suite *TestSuiteStandard) TestProjectNominalBudgetFullDiscount() {
	// A 100% discount cannot be divided by, the nominal budget stays
	// at the actual budget
	project := suite.createTestProject(models.Project{
		ActualBudget: decimal.NewFromInt(100000),
		Discount:     decimal.NewFromInt(100),
	})

	suite.Assert().True(project.NominalBudget.Equal(decimal.NewFromInt(100000)), "NominalBudget is %s, expected 100000", project.NominalBudget)
}

func (suite *TestSuiteStandard) TestProjectDiscountOutOfRange() {
	for _, discount := range []decimal.Decimal{decimal.NewFromInt(-1), decimal.NewFromInt(101)} {
		err := models.DB.Create(&models.Project{
			Wbs:      "P.2026.9999",
			Start:    types.NewMonth(2026, 1),
			End:      types.NewMonth(2026, 12),
			Discount: discount,
		}).Error

		suite.Assert().ErrorIs(err, models.ErrProjectDiscountOutOfRange)
	}
}

func (suite *TestSuiteStandard) TestProjectEndBeforeStart() {
	err := models.DB.Create(&models.Project{
		Wbs:   "P.2026.9999",
		Start: types.NewMonth(2026, 6),
		End:   types.NewMonth(2026, 1),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrProjectEndBeforeStart)
}

func (suite *TestSuiteStandard) TestProjectWbsUnique() {
	_ = suite.createTestProject(models.Project{Wbs: "P.2026.0042"})

	err := models.DB.Create(&models.Project{
		Wbs:   "P.2026.0042",
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 12),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrProjectWbsNotUnique)
}

func (suite *TestSuiteStandard) TestProjectMonths() {
	project := suite.createTestProject(models.Project{
		Start: types.NewMonth(2026, 1),
		End:   types.NewMonth(2026, 12),
	})

	months := project.Months()
	suite.Assert().Len(months, 12)
	suite.Assert().Equal(types.NewMonth(2026, 1), months[0])
	suite.Assert().Equal(types.NewMonth(2026, 12), months[11])
}

func (suite *TestSuiteStandard) TestProjectNotFoundMessage() {
	var project models.Project
	err := models.DB.First(&project, "id = ?", "79ee2b08-5ede-4e32-b02f-9152b7c0a726").Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no project matching your query", err.Error())
}
