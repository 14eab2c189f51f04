package v1

import (
	"fmt"
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterRosterRoutes registers the routes for roster members with
// the RouterGroup that is passed.
func RegisterRosterRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRosterList)
		r.GET("", GetRosterMembers)
		r.POST("", CreateRosterMembers)
	}

	{
		r.OPTIONS("/:id", OptionsRosterDetail)
		r.GET("/:id", GetRosterMember)
	}
}

func OptionsRosterList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsRosterDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var member models.RosterMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// CreateRosterMembers creates new roster members.
func CreateRosterMembers(c *gin.Context) {
	var members []RosterMemberEditable

	err := httputil.BindData(c, &members)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RosterMemberCreateResponse{
			Error: &e,
		})
		return
	}

	responseStatus := http.StatusCreated
	r := RosterMemberCreateResponse{}

	for _, editable := range members {
		member := editable.model()

		err := models.DB.Create(&member).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newRosterMember(c, member)
		r.Data = append(r.Data, RosterMemberResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// GetRosterMembers returns a list of roster members.
func GetRosterMembers(c *gin.Context) {
	var filter RosterMemberQueryFilter

	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var members []models.RosterMember

	q := models.DB.
		Order("full_name ASC").
		Where(filter.model(), queryFields...)

	if filter.Search != "" {
		q = q.Where("full_name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&members).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RosterMemberListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RosterMemberListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]RosterMember, 0)
	for _, member := range members {
		apiResources = append(apiResources, newRosterMember(c, member))
	}

	c.JSON(http.StatusOK, RosterMemberListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetRosterMember returns a specific roster member.
func GetRosterMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RosterMemberResponse{
			Error: &s,
		})
		return
	}

	var member models.RosterMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RosterMemberResponse{
			Error: &s,
		})
		return
	}

	apiResource := newRosterMember(c, member)
	c.JSON(http.StatusOK, RosterMemberResponse{Data: &apiResource})
}
