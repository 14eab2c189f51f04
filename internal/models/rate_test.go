package models_test

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestActualRate() {
	actual := models.ActualRate(decimal.NewFromInt(500), decimal.NewFromInt(20))
	suite.Assert().True(actual.Equal(decimal.NewFromInt(400)), "actual rate is %s, expected 400", actual)

	// No discount keeps the nominal rate
	actual = models.ActualRate(decimal.NewFromInt(500), decimal.Zero)
	suite.Assert().True(actual.Equal(decimal.NewFromInt(500)), "actual rate is %s, expected 500", actual)
}

func (suite *TestSuiteStandard) TestGlobalRateLevelUnique() {
	_ = suite.createTestGlobalRate(models.GlobalRate{Level: "SC"})

	err := models.DB.Create(&models.GlobalRate{
		Level:       "SC",
		NominalRate: decimal.NewFromInt(600),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrGlobalRateLevelNotUnique)
}

func (suite *TestSuiteStandard) TestProjectRateLevelUnique() {
	project := suite.createTestProject(models.Project{})

	rate := models.ProjectRate{
		ProjectID:       project.ID,
		Level:           "SC",
		NominalRate:     decimal.NewFromInt(500),
		ActualDailyRate: decimal.NewFromInt(400),
	}
	suite.Require().Nil(models.DB.Create(&rate).Error)

	err := models.DB.Create(&models.ProjectRate{
		ProjectID:       project.ID,
		Level:           "SC",
		NominalRate:     decimal.NewFromInt(600),
		ActualDailyRate: decimal.NewFromInt(480),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrProjectRateLevelNotUnique)
}
