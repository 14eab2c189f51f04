package v1

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterBillingRoutes registers the routes for billings with the
// RouterGroup that is passed.
func RegisterBillingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBillingList)
	r.POST("", CreateBillings)
}

func OptionsBillingList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateBillings writes monthly billed amounts. A row for an existing
// (project, month) key replaces the amount. After the writes, every
// affected project is recalculated from the earliest written month on
// its latest forecast version.
func CreateBillings(c *gin.Context) {
	var billings []BillingEditable

	err := httputil.BindData(c, &billings)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillingCreateResponse{
			Error: &e,
		})
		return
	}

	s := store()
	responseStatus := http.StatusCreated
	r := BillingCreateResponse{}

	earliest := make(map[uuid.UUID]types.Month)

	for _, editable := range billings {
		billing := editable.model()

		err := s.UpsertBilling(c.Request.Context(), &billing)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		if month, ok := earliest[billing.ProjectID]; !ok || billing.Month.Before(month) {
			earliest[billing.ProjectID] = billing.Month
		}

		data := newBilling(billing)
		r.Data = append(r.Data, BillingResponse{Data: &data})
	}

	recalc := recalculator()
	for projectID, month := range earliest {
		version, err := s.LatestVersion(c.Request.Context(), projectID)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		err = recalc.RecalculateFromMonth(c.Request.Context(), projectID, version.ID, month)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
		}
	}

	c.JSON(responseStatus, r)
}
