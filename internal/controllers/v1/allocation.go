package v1

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterAllocationRoutes registers the routes for resource allocations
// with the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAllocationList)
	r.POST("", CreateAllocations)
}

func OptionsAllocationList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateAllocations writes resource allocations. A row for an existing
// (version, member, month) key replaces the allocated days. After the
// writes, every affected forecast version is recalculated from the
// earliest written month.
func CreateAllocations(c *gin.Context) {
	var allocations []AllocationEditable

	err := httputil.BindData(c, &allocations)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationCreateResponse{
			Error: &e,
		})
		return
	}

	s := store()
	responseStatus := http.StatusCreated
	r := AllocationCreateResponse{}

	// Earliest written month per forecast version, so each version is
	// recalculated exactly once
	earliest := make(map[uuid.UUID]types.Month)

	for _, editable := range allocations {
		allocation := editable.model()

		err := s.UpsertAllocation(c.Request.Context(), &allocation)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		if month, ok := earliest[allocation.ForecastVersionID]; !ok || allocation.Month.Before(month) {
			earliest[allocation.ForecastVersionID] = allocation.Month
		}

		data := newAllocation(allocation)
		r.Data = append(r.Data, AllocationResponse{Data: &data})
	}

	recalc := recalculator()
	for versionID, month := range earliest {
		version, err := s.Version(c.Request.Context(), versionID)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		err = recalc.RecalculateFromMonth(c.Request.Context(), version.ProjectID, versionID, month)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
		}
	}

	c.JSON(responseStatus, r)
}
