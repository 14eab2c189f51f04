package models

import (
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResourceAllocation assigns days of one roster member to one month of a
// forecast version. There is at most one row per (version, member, month);
// writes for an existing key replace the allocated days.
type ResourceAllocation struct {
	DefaultModel
	ForecastVersionID uuid.UUID       `json:"forecastVersionId" gorm:"uniqueIndex:allocation_version_roster_month"`
	ForecastVersion   ForecastVersion `json:"-"`
	RosterMemberID    uuid.UUID       `json:"rosterMemberId" gorm:"uniqueIndex:allocation_version_roster_month"`
	RosterMember      RosterMember    `json:"-"`
	Month             types.Month     `json:"month" gorm:"uniqueIndex:allocation_version_roster_month" example:"2026-01-01T00:00:00.000000Z"` // Always the first of the month
	AllocatedDays     decimal.Decimal `json:"allocatedDays" gorm:"type:DECIMAL(20,8)" example:"10.5"`
}

func (a *ResourceAllocation) BeforeSave(_ *gorm.DB) error {
	if a.AllocatedDays.IsNegative() {
		return ErrAllocationDaysNegative
	}

	return nil
}
