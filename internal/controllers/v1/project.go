package v1

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterProjectRoutes registers the routes for Projects with
// the RouterGroup that is passed.
func RegisterProjectRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", GetProjects)
		r.POST("", CreateProjects)
	}

	// Project with ID
	{
		r.OPTIONS("/:id", OptionsProjectDetail)
		r.GET("/:id", GetProject)
	}

	// Calculated financials and the snapshot workflow
	{
		r.GET("/:id/financials", GetProjectFinancials)
		r.GET("/:id/snapshots", GetProjectSnapshots)
		r.POST("/:id/snapshots/recalculate", RecalculateSnapshots)
		r.POST("/:id/snapshots/:month/confirm", ConfirmSnapshot)
		r.POST("/:id/snapshots/:month/overwrite", OverwriteSnapshot)
		r.POST("/:id/snapshots/:month/clear-override", ClearSnapshotOverride)
	}
}

func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsProjectDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// CreateProjects creates new projects. For every project the current
// global rates are snapshotted into project rates, forecast version 1 is
// created and the monthly snapshots are initialized with the first month
// editable.
func CreateProjects(c *gin.Context) {
	var projects []ProjectEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &projects)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := ProjectCreateResponse{}

	for _, editable := range projects {
		project := editable.model()

		err := models.DB.Create(&project).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		err = initializeProject(c, project)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newProject(c, project)
		r.Data = append(r.Data, ProjectResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// initializeProject snapshots the global rates, creates forecast version
// 1 and initializes the monthly snapshots for a new project.
func initializeProject(c *gin.Context, project models.Project) error {
	s := store()

	_, err := s.GenerateProjectRates(c.Request.Context(), project)
	if err != nil {
		return err
	}

	version := models.ForecastVersion{
		ProjectID:     project.ID,
		VersionNumber: 1,
	}
	err = models.DB.Create(&version).Error
	if err != nil {
		return err
	}

	return workflow().InitializeSnapshots(c.Request.Context(), project.ID, version.ID, project.Start, project.End)
}

// GetProjects returns a list of projects, filterable by WBS code, name
// and a free text search over both.
func GetProjects(c *gin.Context) {
	var filter ProjectQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var projects []models.Project

	// Always sort by WBS code
	q := models.DB.
		Order("wbs ASC").
		Where(filter.model(), queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Projects and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Project, 0)
	for _, project := range projects {
		apiResources = append(apiResources, newProject(c, project))
	}

	c.JSON(http.StatusOK, ProjectListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetProject returns a specific project.
func GetProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &apiResource})
}
