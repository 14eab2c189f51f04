package ledger

import (
	"context"
	"time"

	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Workflow drives the month state machine: snapshot initialization,
// confirmation with promotion of the next month, manual overrides and
// their clearing.
type Workflow struct {
	Snapshots SnapshotStore
	Recalc    *Recalculator
}

// OverrideValues are the manually entered replacement values for a
// snapshot. Only set fields are applied. Nsr and Margin are derived
// fields; setting them is rejected.
type OverrideValues struct {
	OpeningBalance     decimal.NullDecimal `json:"openingBalance" swaggertype:"number"`
	CumulativeBillings decimal.NullDecimal `json:"cumulativeBillings" swaggertype:"number"`
	Wip                decimal.NullDecimal `json:"wip" swaggertype:"number"`
	DirectExpenses     decimal.NullDecimal `json:"directExpenses" swaggertype:"number"`
	OperationalCost    decimal.NullDecimal `json:"operationalCost" swaggertype:"number"`
	Nsr                decimal.NullDecimal `json:"nsr" swaggertype:"number"`
	Margin             decimal.NullDecimal `json:"margin" swaggertype:"number"`
}

// InitializeSnapshots creates one snapshot per month of the range:
// PENDING for every month, EDITABLE for the first. Months that already
// have a snapshot keep it untouched, so initialization is idempotent.
// If after creation no EDITABLE snapshot exists at all, the earliest
// PENDING one is promoted.
func (w *Workflow) InitializeSnapshots(ctx context.Context, projectID, versionID uuid.UUID, start, end types.Month) error {
	if end.Before(start) {
		return ErrInvalidMonthRange
	}

	existing, err := w.Snapshots.ForProject(ctx, projectID, versionID)
	if err != nil {
		return err
	}

	existingMonths := make(map[string]bool, len(existing))
	hasEditable := false
	for _, snapshot := range existing {
		existingMonths[snapshot.Month.String()] = true
		if snapshot.Status == models.SnapshotEditable {
			hasEditable = true
		}
	}

	var created []models.ProjectMonthlySnapshot
	for i, month := range start.RangeThrough(end) {
		if existingMonths[month.String()] {
			continue
		}

		status := models.SnapshotPending
		if i == 0 {
			status = models.SnapshotEditable
			hasEditable = true
		}

		created = append(created, models.ProjectMonthlySnapshot{
			ProjectID:         projectID,
			ForecastVersionID: versionID,
			Month:             month,
			Status:            status,
		})
	}

	if len(created) > 0 {
		if err := w.Snapshots.CreateAll(ctx, created); err != nil {
			return err
		}
	}

	// Safety net: at least one month must be editable
	if !hasEditable {
		if _, err := w.Snapshots.PromoteNextPending(ctx, projectID, versionID); err != nil {
			return err
		}
	}

	return nil
}

// ConfirmMonth locks the given month. It succeeds only when the row is
// currently EDITABLE; a false result without error means another caller
// won the race or the month was never editable, and nothing was changed.
//
// On success the earliest PENDING month becomes EDITABLE, and the
// confirmed opening balance is carried into the later non-overridden
// months with their NSR and margin re-derived.
func (w *Workflow) ConfirmMonth(ctx context.Context, projectID, versionID uuid.UUID, month types.Month, confirmedBy string) (bool, error) {
	snapshot, err := w.Snapshots.ByMonth(ctx, projectID, versionID, month)
	if err != nil {
		return false, err
	}

	if snapshot.Status != models.SnapshotEditable {
		return false, nil
	}

	confirmed, err := w.Snapshots.Confirm(ctx, snapshot.ID, confirmedBy)
	if err != nil || !confirmed {
		return false, err
	}

	if _, err := w.Snapshots.PromoteNextPending(ctx, projectID, versionID); err != nil {
		return true, err
	}

	if err := w.propagateOpeningBalance(ctx, projectID, versionID, month, snapshot.OpeningBalance, false); err != nil {
		return true, err
	}

	log.Info().
		Str("project", projectID.String()).
		Str("month", month.String()).
		Str("confirmedBy", confirmedBy).
		Msg("month confirmed")

	return true, nil
}

// OverwriteSnapshot manually replaces calculated values on the EDITABLE
// month. The first override captures the calculated values into the
// Original* fields; later overrides keep that first baseline. NSR and
// margin are re-derived from the overridden inputs, and an opening
// balance change is carried into the later PENDING months.
func (w *Workflow) OverwriteSnapshot(ctx context.Context, projectID, versionID uuid.UUID, month types.Month, values OverrideValues, overriddenBy string) error {
	if values.Nsr.Valid || values.Margin.Valid {
		return ErrDerivedFieldOverride
	}

	snapshot, err := w.Snapshots.ByMonth(ctx, projectID, versionID, month)
	if err != nil {
		return err
	}

	if snapshot.Status != models.SnapshotEditable {
		return ErrMonthNotEditable
	}

	openingBalanceChanged := values.OpeningBalance.Valid && !values.OpeningBalance.Decimal.Equal(snapshot.OpeningBalance)

	// The first override wins as the preserved baseline
	if !snapshot.IsOverridden {
		snapshot.OriginalOpeningBalance = decimal.NewNullDecimal(snapshot.OpeningBalance)
		snapshot.OriginalCumulativeBillings = decimal.NewNullDecimal(snapshot.CumulativeBillings)
		snapshot.OriginalWip = decimal.NewNullDecimal(snapshot.Wip)
		snapshot.OriginalDirectExpenses = decimal.NewNullDecimal(snapshot.DirectExpenses)
		snapshot.OriginalOperationalCost = decimal.NewNullDecimal(snapshot.OperationalCost)
	}

	if values.OpeningBalance.Valid {
		snapshot.OpeningBalance = values.OpeningBalance.Decimal
	}
	if values.CumulativeBillings.Valid {
		snapshot.CumulativeBillings = values.CumulativeBillings.Decimal
	}
	if values.Wip.Valid {
		snapshot.Wip = values.Wip.Decimal
	}
	if values.DirectExpenses.Valid {
		snapshot.DirectExpenses = values.DirectExpenses.Decimal
	}
	if values.OperationalCost.Valid {
		snapshot.OperationalCost = values.OperationalCost.Decimal
	}

	snapshot.Nsr = netServiceRevenue(snapshot.Wip, snapshot.CumulativeBillings, snapshot.OpeningBalance, snapshot.DirectExpenses)
	snapshot.Margin = marginOf(snapshot.Nsr, snapshot.OperationalCost)

	now := time.Now().In(time.UTC)
	snapshot.IsOverridden = true
	snapshot.OverriddenAt = &now
	snapshot.OverriddenBy = overriddenBy
	snapshot.UpdatedAt = now

	if err := w.Snapshots.Save(ctx, &snapshot); err != nil {
		return err
	}

	if openingBalanceChanged {
		return w.propagateOpeningBalance(ctx, projectID, versionID, month, snapshot.OpeningBalance, true)
	}

	return nil
}

// ClearOverride discards the manual override of the EDITABLE month,
// including the Original* shadow values, and recalculates from that
// month so calculated values replace the discarded ones.
func (w *Workflow) ClearOverride(ctx context.Context, projectID, versionID uuid.UUID, month types.Month) error {
	snapshot, err := w.Snapshots.ByMonth(ctx, projectID, versionID, month)
	if err != nil {
		return err
	}

	if snapshot.Status != models.SnapshotEditable {
		return ErrMonthNotEditable
	}

	snapshot.IsOverridden = false
	snapshot.OverriddenAt = nil
	snapshot.OverriddenBy = ""
	snapshot.OriginalOpeningBalance = decimal.NullDecimal{}
	snapshot.OriginalCumulativeBillings = decimal.NullDecimal{}
	snapshot.OriginalWip = decimal.NullDecimal{}
	snapshot.OriginalDirectExpenses = decimal.NullDecimal{}
	snapshot.OriginalOperationalCost = decimal.NullDecimal{}
	snapshot.UpdatedAt = time.Now().In(time.UTC)

	if err := w.Snapshots.Save(ctx, &snapshot); err != nil {
		return err
	}

	return w.Recalc.RecalculateFromMonth(ctx, projectID, versionID, month)
}

// propagateOpeningBalance carries an opening balance into the months
// after the given one and re-derives their NSR and margin. Overridden
// rows are skipped; pendingOnly additionally restricts the pass to
// PENDING rows (the overwrite path), while confirmation also refreshes
// the months that are already editable.
func (w *Workflow) propagateOpeningBalance(ctx context.Context, projectID, versionID uuid.UUID, after types.Month, openingBalance decimal.Decimal, pendingOnly bool) error {
	snapshots, err := w.Snapshots.NonConfirmedFrom(ctx, projectID, versionID, after.Next())
	if err != nil {
		return err
	}

	updated := make([]models.ProjectMonthlySnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot.IsOverridden {
			continue
		}
		if pendingOnly && snapshot.Status != models.SnapshotPending {
			continue
		}

		snapshot.OpeningBalance = openingBalance
		snapshot.Nsr = netServiceRevenue(snapshot.Wip, snapshot.CumulativeBillings, snapshot.OpeningBalance, snapshot.DirectExpenses)
		snapshot.Margin = marginOf(snapshot.Nsr, snapshot.OperationalCost)
		snapshot.UpdatedAt = time.Now().In(time.UTC)

		updated = append(updated, snapshot)
	}

	return w.Snapshots.SaveAll(ctx, updated)
}
