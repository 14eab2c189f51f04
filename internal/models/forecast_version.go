package models

import (
	"github.com/google/uuid"
)

// ForecastVersion groups the resource allocations of one planning pass
// for a project. Snapshots are keyed by it, so deleting a version bulk
// deletes its snapshots with it.
type ForecastVersion struct {
	DefaultModel
	ProjectID     uuid.UUID `json:"projectId" gorm:"uniqueIndex:forecast_version_project_number"`
	Project       Project   `json:"-"`
	VersionNumber int       `json:"versionNumber" gorm:"uniqueIndex:forecast_version_project_number" example:"1"`
}
