package v1

import (
	"errors"
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/ledger"
	"github.com/forecast-ledger/backend/internal/models"
	fl_uuid "github.com/forecast-ledger/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type versionQuery struct {
	Version fl_uuid.UUID `form:"version"` // Forecast version, defaults to the latest
}

// resolveVersion returns the forecast version the request refers to: the
// one in the version query parameter if set, the project's latest
// otherwise.
func resolveVersion(c *gin.Context, projectID uuid.UUID) (models.ForecastVersion, error) {
	var query versionQuery
	_ = c.ShouldBindQuery(&query)

	if query.Version != fl_uuid.Nil {
		return store().Version(c.Request.Context(), query.Version.UUID)
	}

	return store().LatestVersion(c.Request.Context(), projectID)
}

// GetProjectSnapshots returns the monthly snapshots of a project,
// ascending by month.
func GetProjectSnapshots(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotListResponse{
			Error: &s,
		})
		return
	}

	version, err := resolveVersion(c, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotListResponse{
			Error: &s,
		})
		return
	}

	snapshots, err := store().ForProject(c.Request.Context(), uri.ID.UUID, version.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SnapshotListResponse{Data: snapshots})
}

// GetProjectFinancials runs the calculator over the whole project
// timeline and returns the monthly facts. Projects with snapshotted
// project rates use those; projects without fall back to the global
// rates with the discount applied inline.
func GetProjectFinancials(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &s,
		})
		return
	}

	ctx := c.Request.Context()
	s := store()

	project, err := s.Project(ctx, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	version, err := resolveVersion(c, project.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	allocations, err := s.AllocationsForVersion(ctx, version.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	roster, err := s.RosterForVersion(ctx, version.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	billings, err := s.BillingsForProject(ctx, project.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	expenses, err := s.ExpensesForProject(ctx, project.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	overrides, err := s.OverridesForProject(ctx, project.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	rates, err := s.RatesForProject(ctx, project.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	var facts []ledger.MonthlyFact
	if len(rates) > 0 {
		facts, err = ledger.Calculate(project, allocations, roster, billings, expenses, overrides, rates)
	} else {
		var globalRates []models.GlobalRate
		globalRates, err = s.GlobalRates(ctx)
		if err == nil {
			facts, err = ledger.CalculateWithGlobalRates(project, allocations, roster, billings, expenses, overrides, globalRates)
		}
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialsResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, FinancialsResponse{Data: facts})
}

// RecalculateSnapshots recalculates the project from the currently
// editable month onwards.
func RecalculateSnapshots(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	version, err := resolveVersion(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = recalculator().RecalculateEditableMonth(c.Request.Context(), uri.ID.UUID, version.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ConfirmSnapshot locks the month. The month must currently be EDITABLE;
// a month that is not responds with 409 and no change.
func ConfirmSnapshot(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The body is optional: confirming anonymously is allowed
	var editable ConfirmEditable
	err = httputil.BindData(c, &editable)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	version, err := resolveVersion(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	confirmed, err := workflow().ConfirmMonth(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month, editable.ConfirmedBy)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !confirmed {
		c.JSON(http.StatusConflict, httpError{
			Error: ledger.ErrMonthNotEditable.Error(),
		})
		return
	}

	snapshot, err := store().ByMonth(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{Data: &snapshot})
}

// OverwriteSnapshot manually replaces calculated values on the EDITABLE
// month.
func OverwriteSnapshot(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var editable OverrideEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	version, err := resolveVersion(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = workflow().OverwriteSnapshot(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month, editable.values(), editable.OverriddenBy)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	snapshot, err := store().ByMonth(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{Data: &snapshot})
}

// ClearSnapshotOverride discards the manual override of the EDITABLE
// month and recalculates from it.
func ClearSnapshotOverride(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	version, err := resolveVersion(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = workflow().ClearOverride(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	snapshot, err := store().ByMonth(c.Request.Context(), uri.ID.UUID, version.ID, uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{Data: &snapshot})
}
