// Package ledger implements the monthly financial ledger: the pure
// calculator that turns allocations, billings, expenses and overrides
// into ordered monthly facts, the recalculation pass that reconciles
// those facts with persisted snapshots, and the month workflow state
// machine (pending, editable, confirmed).
package ledger

import (
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyFact is the calculator output for one month of the project
// timeline. Billings, Wip, Expenses and Cost are cumulative from the
// project start; MonthlyBillings and MonthlyExpenses are the period
// amounts of the month alone.
type MonthlyFact struct {
	Month           types.Month     `json:"month"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	MonthlyBillings decimal.Decimal `json:"monthlyBillings"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	Billings        decimal.Decimal `json:"billings"`
	Wip             decimal.Decimal `json:"wip"`
	Expenses        decimal.Decimal `json:"expenses"`
	Cost            decimal.Decimal `json:"cost"`
	Nsr             decimal.Decimal `json:"nsr"`
	Margin          decimal.Decimal `json:"margin"`
	IsOverridden    bool            `json:"isOverridden"`
}

// baseValues are the non-cumulative amounts of a single month before
// the cumulative fold.
type baseValues struct {
	cost    decimal.Decimal
	wip     decimal.Decimal
	billing decimal.Decimal
	expense decimal.Decimal
}

// Calculate computes the monthly financial facts for the whole project
// timeline using project rates: WIP is allocated days times the
// pre-discounted ActualDailyRate of the roster member's level.
//
// The result has exactly one fact per month from the project start
// through its end, ascending.
func Calculate(
	project models.Project,
	allocations []models.ResourceAllocation,
	roster []models.RosterMember,
	billings []models.Billing,
	expenses []models.Expense,
	overrides []models.Override,
	rates []models.ProjectRate,
) ([]MonthlyFact, error) {
	if project.End.Before(project.Start) {
		return nil, ErrInvalidMonthRange
	}

	rateByLevel := make(map[string]decimal.Decimal, len(rates))
	for _, rate := range rates {
		rateByLevel[rate.Level] = rate.ActualDailyRate
	}

	months := project.Months()
	base := calculateBaseValues(months, allocations, roster, billings, expenses, rateByLevel)
	return calculateCumulativeValues(months, base, overrides), nil
}

// CalculateWithGlobalRates is the legacy calculation mode: WIP is
// allocated days times the global nominal rate with the project discount
// applied inline. For equivalent rate data both modes produce identical
// results.
func CalculateWithGlobalRates(
	project models.Project,
	allocations []models.ResourceAllocation,
	roster []models.RosterMember,
	billings []models.Billing,
	expenses []models.Expense,
	overrides []models.Override,
	rates []models.GlobalRate,
) ([]MonthlyFact, error) {
	if project.End.Before(project.Start) {
		return nil, ErrInvalidMonthRange
	}

	rateByLevel := make(map[string]decimal.Decimal, len(rates))
	for _, rate := range rates {
		rateByLevel[rate.Level] = models.ActualRate(rate.NominalRate, project.Discount)
	}

	months := project.Months()
	base := calculateBaseValues(months, allocations, roster, billings, expenses, rateByLevel)
	return calculateCumulativeValues(months, base, overrides), nil
}

// calculateBaseValues sums the per-month cost, WIP, billing and expense
// amounts. An allocation without a roster member contributes nothing; a
// roster member without a matching rate contributes cost but no WIP.
func calculateBaseValues(
	months []types.Month,
	allocations []models.ResourceAllocation,
	roster []models.RosterMember,
	billings []models.Billing,
	expenses []models.Expense,
	rateByLevel map[string]decimal.Decimal,
) map[string]baseValues {
	rosterByID := make(map[uuid.UUID]models.RosterMember, len(roster))
	for _, member := range roster {
		rosterByID[member.ID] = member
	}

	billingByMonth := make(map[string]decimal.Decimal, len(billings))
	for _, billing := range billings {
		billingByMonth[billing.Month.String()] = billing.Amount
	}

	expenseByMonth := make(map[string]decimal.Decimal, len(expenses))
	for _, expense := range expenses {
		expenseByMonth[expense.Month.String()] = expense.Amount
	}

	result := make(map[string]baseValues, len(months))
	for _, month := range months {
		values := baseValues{}

		for _, allocation := range allocations {
			if !allocation.Month.Equal(month) {
				continue
			}

			member, ok := rosterByID[allocation.RosterMemberID]
			if !ok {
				continue
			}

			values.cost = values.cost.Add(allocation.AllocatedDays.Mul(member.DailyCost()))

			if member.Level != "" {
				if rate, ok := rateByLevel[member.Level]; ok {
					values.wip = values.wip.Add(allocation.AllocatedDays.Mul(rate))
				}
			}
		}

		values.billing = billingByMonth[month.String()]
		values.expense = expenseByMonth[month.String()]

		result[month.String()] = values
	}

	return result
}

// calculateCumulativeValues folds the base values into cumulative facts,
// month by month. A confirmed override replaces the whole month and
// becomes the anchor the following months accumulate from; months
// without activity carry the previous totals forward unchanged.
func calculateCumulativeValues(
	months []types.Month,
	base map[string]baseValues,
	overrides []models.Override,
) []MonthlyFact {
	overrideByMonth := make(map[string]models.Override, len(overrides))
	for _, override := range overrides {
		if override.Confirmed {
			overrideByMonth[override.Month.String()] = override
		}
	}

	facts := make([]MonthlyFact, 0, len(months))
	var previous *MonthlyFact

	for _, month := range months {
		values := base[month.String()]

		var current MonthlyFact

		if override, ok := overrideByMonth[month.String()]; ok {
			// The override anchors the month. MonthlyBillings and
			// MonthlyExpenses still reflect the actual period amounts.
			current = MonthlyFact{
				Month:           month,
				OpeningBalance:  override.OpeningBalance.Decimal,
				MonthlyBillings: values.billing,
				MonthlyExpenses: values.expense,
				Billings:        override.Billings.Decimal,
				Wip:             override.Wip.Decimal,
				Expenses:        override.Expenses.Decimal,
				Cost:            override.Cost.Decimal,
				Nsr:             override.Nsr.Decimal,
				Margin:          override.Margin.Decimal,
				IsOverridden:    true,
			}
		} else {
			if previous == nil {
				current = MonthlyFact{
					Month:           month,
					MonthlyBillings: values.billing,
					MonthlyExpenses: values.expense,
					Billings:        values.billing,
					Wip:             values.wip,
					Expenses:        values.expense,
					Cost:            values.cost,
				}
			} else {
				current = MonthlyFact{
					Month:           month,
					OpeningBalance:  previous.OpeningBalance, // Carried forward unchanged
					MonthlyBillings: values.billing,
					MonthlyExpenses: values.expense,
					Billings:        previous.Billings.Add(values.billing),
					Wip:             previous.Wip.Add(values.wip),
					Expenses:        previous.Expenses.Add(values.expense),
					Cost:            previous.Cost.Add(values.cost),
				}
			}

			current.Nsr = netServiceRevenue(current.Wip, current.Billings, current.OpeningBalance, current.Expenses)
			current.Margin = marginOf(current.Nsr, current.Cost)
		}

		facts = append(facts, current)
		previous = &facts[len(facts)-1]
	}

	return facts
}

// netServiceRevenue derives NSR = WIP + cumulative billings - opening
// balance - direct expenses.
func netServiceRevenue(wip, billings, openingBalance, expenses decimal.Decimal) decimal.Decimal {
	return wip.Add(billings).Sub(openingBalance).Sub(expenses)
}

// marginOf derives the margin ratio (NSR - cost) / NSR. A zero NSR
// yields a margin of exactly zero, not an error.
func marginOf(nsr, cost decimal.Decimal) decimal.Decimal {
	if nsr.IsZero() {
		return decimal.Zero
	}

	return nsr.Sub(cost).Div(nsr)
}

// marginOfAbs derives the margin ratio with |NSR| as the denominator so
// that a negative NSR keeps the sign of the numerator (NSR -100, cost 50
// gives -1.5). Used by the recalculation pass.
func marginOfAbs(nsr, cost decimal.Decimal) decimal.Decimal {
	if nsr.IsZero() {
		return decimal.Zero
	}

	return nsr.Sub(cost).Div(nsr.Abs())
}
