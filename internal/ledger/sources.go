package ledger

import (
	"context"

	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
)

// The ledger depends on narrow read and write capabilities instead of a
// storage technology, so the recalculation pass and the workflow can be
// tested against in-memory fakes. internal/storage provides the gorm
// implementation of all of them.

// ProjectSource reads projects.
type ProjectSource interface {
	Project(ctx context.Context, id uuid.UUID) (models.Project, error)
}

// AllocationSource reads the allocations of a forecast version.
type AllocationSource interface {
	AllocationsForVersion(ctx context.Context, versionID uuid.UUID) ([]models.ResourceAllocation, error)
}

// RosterSource reads the roster members allocated in a forecast version.
type RosterSource interface {
	RosterForVersion(ctx context.Context, versionID uuid.UUID) ([]models.RosterMember, error)
}

// RateSource reads the rates of a project.
type RateSource interface {
	RatesForProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectRate, error)
}

// BillingSource reads the monthly billing amounts of a project.
type BillingSource interface {
	BillingsForProject(ctx context.Context, projectID uuid.UUID) ([]models.Billing, error)
}

// ExpenseSource reads the monthly expense amounts of a project.
type ExpenseSource interface {
	ExpensesForProject(ctx context.Context, projectID uuid.UUID) ([]models.Expense, error)
}

// OverrideSource reads the manual overrides of a project.
type OverrideSource interface {
	OverridesForProject(ctx context.Context, projectID uuid.UUID) ([]models.Override, error)
}

// SnapshotStore persists the monthly snapshots and implements the
// status-guarded workflow updates.
type SnapshotStore interface {
	ForProject(ctx context.Context, projectID, versionID uuid.UUID) ([]models.ProjectMonthlySnapshot, error)
	ByMonth(ctx context.Context, projectID, versionID uuid.UUID, month types.Month) (models.ProjectMonthlySnapshot, error)
	EditableMonth(ctx context.Context, projectID, versionID uuid.UUID) (models.ProjectMonthlySnapshot, error)
	NonConfirmedFrom(ctx context.Context, projectID, versionID uuid.UUID, from types.Month) ([]models.ProjectMonthlySnapshot, error)

	CreateAll(ctx context.Context, snapshots []models.ProjectMonthlySnapshot) error
	Save(ctx context.Context, snapshot *models.ProjectMonthlySnapshot) error
	// SaveAll writes all snapshots in one transaction, so a failing
	// write never leaves part of a recalculation pass applied.
	SaveAll(ctx context.Context, snapshots []models.ProjectMonthlySnapshot) error

	// Confirm sets the status to CONFIRMED if and only if the row is
	// currently EDITABLE. The boolean reports whether a row was
	// affected; losing a concurrent confirm is not an error.
	Confirm(ctx context.Context, id uuid.UUID, confirmedBy string) (bool, error)
	// PromoteNextPending promotes the earliest PENDING snapshot of the
	// project and version to EDITABLE.
	PromoteNextPending(ctx context.Context, projectID, versionID uuid.UUID) (bool, error)
}
