package ledger_test

import (
	"context"

	"github.com/forecast-ledger/backend/internal/ledger"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// fakeStore is an in-memory implementation of every capability interface
// the ledger depends on. It keeps the tests of the recalculation pass
// and the workflow free of any database.
type fakeStore struct {
	project     models.Project
	allocations []models.ResourceAllocation
	roster      []models.RosterMember
	rates       []models.ProjectRate
	billings    []models.Billing
	expenses    []models.Expense
	overrides   []models.Override
	snapshots   []models.ProjectMonthlySnapshot

	saved   []models.ProjectMonthlySnapshot
	created []models.ProjectMonthlySnapshot
}

func (f *fakeStore) Project(_ context.Context, id uuid.UUID) (models.Project, error) {
	if f.project.ID != id {
		return models.Project{}, models.ErrResourceNotFound
	}

	return f.project, nil
}

func (f *fakeStore) AllocationsForVersion(_ context.Context, _ uuid.UUID) ([]models.ResourceAllocation, error) {
	return f.allocations, nil
}

func (f *fakeStore) RosterForVersion(_ context.Context, _ uuid.UUID) ([]models.RosterMember, error) {
	return f.roster, nil
}

func (f *fakeStore) RatesForProject(_ context.Context, _ uuid.UUID) ([]models.ProjectRate, error) {
	return f.rates, nil
}

func (f *fakeStore) BillingsForProject(_ context.Context, _ uuid.UUID) ([]models.Billing, error) {
	return f.billings, nil
}

func (f *fakeStore) ExpensesForProject(_ context.Context, _ uuid.UUID) ([]models.Expense, error) {
	return f.expenses, nil
}

func (f *fakeStore) OverridesForProject(_ context.Context, _ uuid.UUID) ([]models.Override, error) {
	return f.overrides, nil
}

func (f *fakeStore) ForProject(_ context.Context, _, _ uuid.UUID) ([]models.ProjectMonthlySnapshot, error) {
	f.sortSnapshots()
	return slices.Clone(f.snapshots), nil
}

func (f *fakeStore) ByMonth(_ context.Context, _, _ uuid.UUID, month types.Month) (models.ProjectMonthlySnapshot, error) {
	for _, snapshot := range f.snapshots {
		if snapshot.Month.Equal(month) {
			return snapshot, nil
		}
	}

	return models.ProjectMonthlySnapshot{}, models.ErrResourceNotFound
}

func (f *fakeStore) EditableMonth(_ context.Context, _, _ uuid.UUID) (models.ProjectMonthlySnapshot, error) {
	for _, snapshot := range f.snapshots {
		if snapshot.Status == models.SnapshotEditable {
			return snapshot, nil
		}
	}

	return models.ProjectMonthlySnapshot{}, models.ErrResourceNotFound
}

func (f *fakeStore) NonConfirmedFrom(_ context.Context, _, _ uuid.UUID, from types.Month) ([]models.ProjectMonthlySnapshot, error) {
	f.sortSnapshots()

	var result []models.ProjectMonthlySnapshot
	for _, snapshot := range f.snapshots {
		if snapshot.Month.Before(from) || snapshot.Status == models.SnapshotConfirmed {
			continue
		}

		result = append(result, snapshot)
	}

	return result, nil
}

func (f *fakeStore) CreateAll(_ context.Context, snapshots []models.ProjectMonthlySnapshot) error {
	for i := range snapshots {
		snapshots[i].ID = uuid.New()
	}

	f.snapshots = append(f.snapshots, snapshots...)
	f.created = append(f.created, snapshots...)
	return nil
}

func (f *fakeStore) Save(_ context.Context, snapshot *models.ProjectMonthlySnapshot) error {
	f.apply(*snapshot)
	f.saved = append(f.saved, *snapshot)
	return nil
}

func (f *fakeStore) SaveAll(_ context.Context, snapshots []models.ProjectMonthlySnapshot) error {
	for _, snapshot := range snapshots {
		f.apply(snapshot)
	}

	f.saved = append(f.saved, snapshots...)
	return nil
}

func (f *fakeStore) Confirm(_ context.Context, id uuid.UUID, confirmedBy string) (bool, error) {
	for i := range f.snapshots {
		if f.snapshots[i].ID == id && f.snapshots[i].Status == models.SnapshotEditable {
			f.snapshots[i].Status = models.SnapshotConfirmed
			f.snapshots[i].ConfirmedBy = confirmedBy
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) PromoteNextPending(_ context.Context, _, _ uuid.UUID) (bool, error) {
	f.sortSnapshots()

	for i := range f.snapshots {
		if f.snapshots[i].Status == models.SnapshotPending {
			f.snapshots[i].Status = models.SnapshotEditable
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) apply(snapshot models.ProjectMonthlySnapshot) {
	for i := range f.snapshots {
		if f.snapshots[i].ID == snapshot.ID {
			f.snapshots[i] = snapshot
			return
		}
	}

	f.snapshots = append(f.snapshots, snapshot)
}

func (f *fakeStore) sortSnapshots() {
	slices.SortFunc(f.snapshots, func(a, b models.ProjectMonthlySnapshot) int {
		if a.Month.Before(b.Month) {
			return -1
		}
		if a.Month.After(b.Month) {
			return 1
		}
		return 0
	})
}

// byMonth returns the stored snapshot for a month, or a zero value.
func (f *fakeStore) byMonth(month types.Month) models.ProjectMonthlySnapshot {
	for _, snapshot := range f.snapshots {
		if snapshot.Month.Equal(month) {
			return snapshot
		}
	}

	return models.ProjectMonthlySnapshot{}
}

func newFakeRecalculator(store *fakeStore) *ledger.Recalculator {
	return &ledger.Recalculator{
		Projects:    store,
		Allocations: store,
		Roster:      store,
		Rates:       store,
		Billings:    store,
		Expenses:    store,
		Overrides:   store,
		Snapshots:   store,
	}
}

func newFakeWorkflow(store *fakeStore) *ledger.Workflow {
	return &ledger.Workflow{
		Snapshots: store,
		Recalc:    newFakeRecalculator(store),
	}
}
