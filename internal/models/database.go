package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	// Migration runs with foreign keys disabled: sqlite does not support
	// ALTER COLUMN, so tables are copied to a temporary table, then the
	// table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	// Close the connection
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// Query callbacks
	err = db.Callback().Query().After("*").Register("forecast_ledger:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("forecast_ledger:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("forecast_ledger:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("forecast_ledger:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("forecast_ledger:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("forecast_ledger:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("forecast_ledger:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// WBS codes are globally unique
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: projects.wbs") {
		db.Error = ErrProjectWbsNotUnique
	}

	// One allocation per (version, roster member, month)
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: resource_allocations.forecast_version_id, resource_allocations.roster_member_id, resource_allocations.month") {
		db.Error = ErrAllocationNotUnique
	}

	// One global rate per level
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: global_rates.level") {
		db.Error = ErrGlobalRateLevelNotUnique
	}

	// One project rate per (project, level)
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: project_rates.project_id, project_rates.level") {
		db.Error = ErrProjectRateLevelNotUnique
	}

	// One billing row per (project, month)
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: billings.project_id, billings.month") {
		db.Error = ErrBillingMonthNotUnique
	}

	// One expense row per (project, month)
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: expenses.project_id, expenses.month") {
		db.Error = ErrExpenseMonthNotUnique
	}

	// Exactly one snapshot per (project, version, month)
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: project_monthly_snapshots.project_id, project_monthly_snapshots.forecast_version_id, project_monthly_snapshots.month") {
		db.Error = ErrSnapshotMonthNotUnique
	}

	// Version numbers are unique per project
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: forecast_versions.project_id, forecast_versions.version_number") {
		db.Error = ErrForecastVersionNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(
		Project{},
		RosterMember{},
		ForecastVersion{},
		ResourceAllocation{},
		GlobalRate{},
		ProjectRate{},
		Billing{},
		Expense{},
		Override{},
		ProjectMonthlySnapshot{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
