package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RosterMember is a person that can be allocated to projects.
//
// The cost arithmetic follows the 14-salary employment structure: two
// additional salaries per year are paid on top of the twelve monthly ones,
// and a month has 18 billable working days. Both constants are fixed by
// the domain, not configurable.
type RosterMember struct {
	DefaultModel
	FullName              string          `json:"fullName" example:"Maria Papadopoulou"`
	Level                 string          `json:"level" example:"SC"` // Seniority level, matched against rates
	MonthlySalary         decimal.Decimal `json:"monthlySalary" gorm:"type:DECIMAL(20,8)" example:"2000"`
	EmployerContributions decimal.Decimal `json:"employerContributions" gorm:"type:DECIMAL(20,8)" example:"500"`
	Cars                  decimal.Decimal `json:"cars" gorm:"type:DECIMAL(20,8)" example:"300"`
	TicketRestaurant      decimal.Decimal `json:"ticketRestaurant" gorm:"type:DECIMAL(20,8)" example:"100"`
	Metlife               decimal.Decimal `json:"metlife" gorm:"type:DECIMAL(20,8)" example:"50"`
}

var (
	fourteenTwelfths = decimal.NewFromInt(14).Div(decimal.NewFromInt(12))
	workingDays      = decimal.NewFromInt(18)
)

// BeforeSave rejects negative cost components.
func (r *RosterMember) BeforeSave(_ *gorm.DB) error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Level = strings.TrimSpace(r.Level)

	for _, amount := range []decimal.Decimal{r.MonthlySalary, r.EmployerContributions, r.Cars, r.TicketRestaurant, r.Metlife} {
		if amount.IsNegative() {
			return ErrRosterMonthlyCostsNegative
		}
	}

	return nil
}

// MonthlyCost12 is the plain monthly cost: salary, employer contributions
// and all benefits.
func (r RosterMember) MonthlyCost12() decimal.Decimal {
	return r.MonthlySalary.Add(r.EmployerContributions).Add(r.Cars).Add(r.TicketRestaurant).Add(r.Metlife)
}

// MonthlyCost14 spreads the two additional yearly salaries over twelve
// months: ((salary + contributions) * 14/12) + benefits.
func (r RosterMember) MonthlyCost14() decimal.Decimal {
	return r.MonthlySalary.Add(r.EmployerContributions).Mul(fourteenTwelfths).
		Add(r.Cars).Add(r.TicketRestaurant).Add(r.Metlife)
}

// DailyCost is MonthlyCost14 over 18 working days.
func (r RosterMember) DailyCost() decimal.Decimal {
	return r.MonthlyCost14().Div(workingDays)
}
