// Package storage provides the gorm-backed implementation of the
// capability interfaces the ledger package depends on, plus the write
// paths (upserts, rate generation) the API surface uses.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Project(ctx context.Context, id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, id).Error
	return project, err
}

func (s *Store) AllocationsForVersion(ctx context.Context, versionID uuid.UUID) ([]models.ResourceAllocation, error) {
	var allocations []models.ResourceAllocation
	err := s.db.WithContext(ctx).
		Where("forecast_version_id = ?", versionID).
		Find(&allocations).Error
	return allocations, err
}

// RosterForVersion returns every roster member that has at least one
// allocation in the forecast version.
func (s *Store) RosterForVersion(ctx context.Context, versionID uuid.UUID) ([]models.RosterMember, error) {
	var members []models.RosterMember
	err := s.db.WithContext(ctx).
		Distinct("roster_members.*").
		Joins("JOIN resource_allocations ON resource_allocations.roster_member_id = roster_members.id").
		Where("resource_allocations.forecast_version_id = ?", versionID).
		Find(&members).Error
	return members, err
}

func (s *Store) RatesForProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectRate, error) {
	var rates []models.ProjectRate
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&rates).Error
	return rates, err
}

func (s *Store) BillingsForProject(ctx context.Context, projectID uuid.UUID) ([]models.Billing, error) {
	var billings []models.Billing
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("month ASC").
		Find(&billings).Error
	return billings, err
}

func (s *Store) ExpensesForProject(ctx context.Context, projectID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("month ASC").
		Find(&expenses).Error
	return expenses, err
}

func (s *Store) OverridesForProject(ctx context.Context, projectID uuid.UUID) ([]models.Override, error) {
	var overrides []models.Override
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("month ASC").
		Find(&overrides).Error
	return overrides, err
}

// Version returns a forecast version by ID.
func (s *Store) Version(ctx context.Context, id uuid.UUID) (models.ForecastVersion, error) {
	var version models.ForecastVersion
	err := s.db.WithContext(ctx).First(&version, id).Error
	return version, err
}

// GlobalRates returns all global rates, ordered by level.
func (s *Store) GlobalRates(ctx context.Context) ([]models.GlobalRate, error) {
	var rates []models.GlobalRate
	err := s.db.WithContext(ctx).Order("level ASC").Find(&rates).Error
	return rates, err
}

// LatestVersion returns the forecast version with the highest version
// number for the project.
func (s *Store) LatestVersion(ctx context.Context, projectID uuid.UUID) (models.ForecastVersion, error) {
	var version models.ForecastVersion
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("version_number DESC").
		First(&version).Error
	return version, err
}

// GenerateProjectRates snapshots the current global rates into
// project-scoped rates, applying the project discount to derive the
// actual daily rate. Rate changes after project creation therefore never
// silently change the project's financials.
func (s *Store) GenerateProjectRates(ctx context.Context, project models.Project) ([]models.ProjectRate, error) {
	var globalRates []models.GlobalRate
	err := s.db.WithContext(ctx).Order("level ASC").Find(&globalRates).Error
	if err != nil {
		return nil, err
	}

	rates := make([]models.ProjectRate, 0, len(globalRates))
	for _, globalRate := range globalRates {
		rates = append(rates, models.ProjectRate{
			ProjectID:       project.ID,
			Level:           globalRate.Level,
			NominalRate:     globalRate.NominalRate,
			ActualDailyRate: models.ActualRate(globalRate.NominalRate, project.Discount),
		})
	}

	if len(rates) == 0 {
		return rates, nil
	}

	err = s.db.WithContext(ctx).Create(&rates).Error
	return rates, err
}

// UpsertAllocation writes the allocated days for (version, member,
// month), replacing an existing row's amount.
func (s *Store) UpsertAllocation(ctx context.Context, allocation *models.ResourceAllocation) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "forecast_version_id"}, {Name: "roster_member_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"allocated_days", "updated_at"}),
		}).
		Create(allocation).Error
}

// UpsertBilling replaces the billed amount of (project, month).
func (s *Store) UpsertBilling(ctx context.Context, billing *models.Billing) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(billing).Error
}

// UpsertExpense replaces the expense amount of (project, month).
func (s *Store) UpsertExpense(ctx context.Context, expense *models.Expense) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(expense).Error
}

func (s *Store) ForProject(ctx context.Context, projectID, versionID uuid.UUID) ([]models.ProjectMonthlySnapshot, error) {
	var snapshots []models.ProjectMonthlySnapshot
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND forecast_version_id = ?", projectID, versionID).
		Order("month ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (s *Store) ByMonth(ctx context.Context, projectID, versionID uuid.UUID, month types.Month) (models.ProjectMonthlySnapshot, error) {
	var snapshot models.ProjectMonthlySnapshot
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND forecast_version_id = ? AND month = ?", projectID, versionID, month).
		First(&snapshot).Error
	return snapshot, err
}

func (s *Store) EditableMonth(ctx context.Context, projectID, versionID uuid.UUID) (models.ProjectMonthlySnapshot, error) {
	var snapshot models.ProjectMonthlySnapshot
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND forecast_version_id = ? AND status = ?", projectID, versionID, models.SnapshotEditable).
		First(&snapshot).Error
	return snapshot, err
}

func (s *Store) NonConfirmedFrom(ctx context.Context, projectID, versionID uuid.UUID, from types.Month) ([]models.ProjectMonthlySnapshot, error) {
	var snapshots []models.ProjectMonthlySnapshot
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND forecast_version_id = ? AND month >= ? AND status <> ?", projectID, versionID, from, models.SnapshotConfirmed).
		Order("month ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (s *Store) CreateAll(ctx context.Context, snapshots []models.ProjectMonthlySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Create(&snapshots).Error
}

func (s *Store) Save(ctx context.Context, snapshot *models.ProjectMonthlySnapshot) error {
	return s.db.WithContext(ctx).Save(snapshot).Error
}

// SaveAll writes all snapshots in one transaction. A failing write rolls
// back the whole batch, so a recalculation pass is never half-applied.
func (s *Store) SaveAll(ctx context.Context, snapshots []models.ProjectMonthlySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range snapshots {
			if err := tx.Save(&snapshots[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Confirm transitions the snapshot to CONFIRMED if and only if it is
// currently EDITABLE. The status guard is part of the UPDATE itself, so
// two concurrent confirms cannot both succeed.
func (s *Store) Confirm(ctx context.Context, id uuid.UUID, confirmedBy string) (bool, error) {
	now := time.Now().In(time.UTC)

	result := s.db.WithContext(ctx).
		Model(&models.ProjectMonthlySnapshot{}).
		Where("id = ? AND status = ?", id, models.SnapshotEditable).
		Updates(map[string]any{
			"status":       models.SnapshotConfirmed,
			"confirmed_at": now,
			"confirmed_by": confirmedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// PromoteNextPending promotes the earliest PENDING snapshot of the
// project and version to EDITABLE. Without a PENDING snapshot it does
// nothing, which is the normal end of a fully confirmed timeline.
func (s *Store) PromoteNextPending(ctx context.Context, projectID, versionID uuid.UUID) (bool, error) {
	var snapshot models.ProjectMonthlySnapshot
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND forecast_version_id = ? AND status = ?", projectID, versionID, models.SnapshotPending).
		Order("month ASC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}

	result := s.db.WithContext(ctx).
		Model(&models.ProjectMonthlySnapshot{}).
		Where("id = ? AND status = ?", snapshot.ID, models.SnapshotPending).
		Update("status", models.SnapshotEditable)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// DeleteForVersion removes every snapshot of a forecast version. The
// delete is unscoped so that re-initializing the version does not
// collide with soft-deleted rows on the unique month index.
func (s *Store) DeleteForVersion(ctx context.Context, versionID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Unscoped().
		Where("forecast_version_id = ?", versionID).
		Delete(&models.ProjectMonthlySnapshot{}).Error
}
