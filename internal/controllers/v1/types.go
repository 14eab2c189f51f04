package v1

import (
	"github.com/forecast-ledger/backend/internal/ledger"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/forecast-ledger/backend/internal/storage"
	"github.com/forecast-ledger/backend/internal/types"
	fl_uuid "github.com/forecast-ledger/backend/internal/uuid"
)

type URIID struct {
	ID fl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	URIID
	Month types.Month `uri:"month" binding:"required" example:"2026-03"` // Year and month in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Total  int64 `json:"total"`  // The total number of records matching the query
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum number of records returned
}

// store returns the gorm-backed storage over the global database
// connection.
func store() *storage.Store {
	return storage.New(models.DB)
}

// recalculator wires the recalculation pass to the storage layer.
func recalculator() *ledger.Recalculator {
	s := store()

	return &ledger.Recalculator{
		Projects:    s,
		Allocations: s,
		Roster:      s,
		Rates:       s,
		Billings:    s,
		Expenses:    s,
		Overrides:   s,
		Snapshots:   s,
	}
}

// workflow wires the month state machine to the storage layer.
func workflow() *ledger.Workflow {
	return &ledger.Workflow{
		Snapshots: store(),
		Recalc:    recalculator(),
	}
}
