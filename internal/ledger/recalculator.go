package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Recalculator reconciles freshly calculated monthly facts with the
// persisted snapshots of a project and forecast version. CONFIRMED
// snapshots are never touched; manually overridden snapshots keep their
// values and re-anchor the months after them.
type Recalculator struct {
	Projects    ProjectSource
	Allocations AllocationSource
	Roster      RosterSource
	Rates       RateSource
	Billings    BillingSource
	Expenses    ExpenseSource
	Overrides   OverrideSource
	Snapshots   SnapshotStore
}

// RecalculateEditableMonth recalculates from the currently editable
// month onwards. Without an editable month this is a no-op.
func (r *Recalculator) RecalculateEditableMonth(ctx context.Context, projectID, versionID uuid.UUID) error {
	editable, err := r.Snapshots.EditableMonth(ctx, projectID, versionID)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return nil
		}
		return err
	}

	return r.RecalculateFromMonth(ctx, projectID, versionID, editable.Month)
}

// RecalculateFromMonth recomputes every non-CONFIRMED snapshot at or
// after the given month.
//
// The calculator always runs over the whole project timeline, because
// cumulative values need the full history. The pass then seeds its
// opening balance and a per-field delta from the anchor: the most recent
// snapshot before the first eligible month that is confirmed or
// overridden. The delta (stored value minus calculated value for the
// anchor month) keeps the months after a locked row consistent with the
// values that were locked, not with what the calculator would produce
// for the locked month today. A change to a confirmed month's inputs is
// therefore neutralized for the months after it: they move only by the
// amount the change shifts the later months themselves.
func (r *Recalculator) RecalculateFromMonth(ctx context.Context, projectID, versionID uuid.UUID, from types.Month) error {
	project, err := r.Projects.Project(ctx, projectID)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			log.Debug().Str("project", projectID.String()).Msg("recalculation skipped, project not found")
			return nil
		}
		return err
	}

	allocations, err := r.Allocations.AllocationsForVersion(ctx, versionID)
	if err != nil {
		return err
	}

	roster, err := r.Roster.RosterForVersion(ctx, versionID)
	if err != nil {
		return err
	}

	rates, err := r.Rates.RatesForProject(ctx, projectID)
	if err != nil {
		return err
	}

	billings, err := r.Billings.BillingsForProject(ctx, projectID)
	if err != nil {
		return err
	}

	expenses, err := r.Expenses.ExpensesForProject(ctx, projectID)
	if err != nil {
		return err
	}

	overrides, err := r.Overrides.OverridesForProject(ctx, projectID)
	if err != nil {
		return err
	}

	facts, err := Calculate(project, allocations, roster, billings, expenses, overrides, rates)
	if err != nil {
		return fmt.Errorf("recalculating project %s: %w", project.Wbs, err)
	}

	factByMonth := make(map[string]MonthlyFact, len(facts))
	for _, fact := range facts {
		factByMonth[fact.Month.String()] = fact
	}

	all, err := r.Snapshots.ForProject(ctx, projectID, versionID)
	if err != nil {
		return err
	}

	eligible, err := r.Snapshots.NonConfirmedFrom(ctx, projectID, versionID, from)
	if err != nil {
		return err
	}

	if len(eligible) == 0 {
		return nil
	}

	slices.SortFunc(eligible, func(a, b models.ProjectMonthlySnapshot) int {
		if a.Month.Before(b.Month) {
			return -1
		}
		if a.Month.After(b.Month) {
			return 1
		}
		return 0
	})

	firstMonth := eligible[0].Month

	// The anchor is the most recent confirmed or overridden snapshot
	// before the first eligible month. Its stored opening balance seeds
	// the propagation, and its stored-minus-calculated difference seeds
	// the deltas.
	propagatedOpeningBalance := decimal.Zero
	var wipDelta, billingsDelta, expensesDelta, costDelta decimal.Decimal

	var anchor *models.ProjectMonthlySnapshot
	for i := range all {
		snapshot := all[i]
		if !snapshot.Month.Before(firstMonth) {
			continue
		}
		if snapshot.Status != models.SnapshotConfirmed && !snapshot.IsOverridden {
			continue
		}
		if anchor == nil || snapshot.Month.After(anchor.Month) {
			anchor = &all[i]
		}
	}

	if anchor != nil {
		propagatedOpeningBalance = anchor.OpeningBalance

		if fact, ok := factByMonth[anchor.Month.String()]; ok {
			wipDelta = anchor.Wip.Sub(fact.Wip)
			billingsDelta = anchor.CumulativeBillings.Sub(fact.Billings)
			expensesDelta = anchor.DirectExpenses.Sub(fact.Expenses)
			costDelta = anchor.OperationalCost.Sub(fact.Cost)
		}
	}

	updated := make([]models.ProjectMonthlySnapshot, 0, len(eligible))

	for _, snapshot := range eligible {
		fact, ok := factByMonth[snapshot.Month.String()]
		if !ok {
			// Snapshot outside the project timeline, nothing to apply
			continue
		}

		if snapshot.IsOverridden {
			// The user's values are fixed. They become the baseline for
			// the months after this one.
			wipDelta = snapshot.Wip.Sub(fact.Wip)
			billingsDelta = snapshot.CumulativeBillings.Sub(fact.Billings)
			expensesDelta = snapshot.DirectExpenses.Sub(fact.Expenses)
			costDelta = snapshot.OperationalCost.Sub(fact.Cost)
			propagatedOpeningBalance = snapshot.OpeningBalance

			// The period amounts always reflect actual activity, even
			// on overridden rows.
			snapshot.MonthlyBillings = fact.MonthlyBillings
			snapshot.MonthlyExpenses = fact.MonthlyExpenses
		} else {
			snapshot.OpeningBalance = propagatedOpeningBalance
			snapshot.Wip = fact.Wip.Add(wipDelta)
			snapshot.CumulativeBillings = fact.Billings.Add(billingsDelta)
			snapshot.DirectExpenses = fact.Expenses.Add(expensesDelta)
			snapshot.OperationalCost = fact.Cost.Add(costDelta)

			snapshot.MonthlyBillings = fact.MonthlyBillings
			snapshot.MonthlyExpenses = fact.MonthlyExpenses
			snapshot.CumulativeExpenses = fact.Expenses
		}

		// NSR and margin are always re-derived, also from overridden inputs
		snapshot.Nsr = netServiceRevenue(snapshot.Wip, snapshot.CumulativeBillings, snapshot.OpeningBalance, snapshot.DirectExpenses)
		snapshot.Margin = marginOfAbs(snapshot.Nsr, snapshot.OperationalCost)
		snapshot.UpdatedAt = time.Now().In(time.UTC)

		updated = append(updated, snapshot)
	}

	return r.Snapshots.SaveAll(ctx, updated)
}
