package v1

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterGlobalRateRoutes registers the routes for global rates with
// the RouterGroup that is passed.
func RegisterGlobalRateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsGlobalRateList)
	r.GET("", GetGlobalRates)
	r.POST("", CreateGlobalRates)
}

func OptionsGlobalRateList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// CreateGlobalRates creates new global rates. Existing projects keep
// their snapshotted project rates, so changing a global rate never
// retroactively changes a project's financials.
func CreateGlobalRates(c *gin.Context) {
	var rates []GlobalRateEditable

	err := httputil.BindData(c, &rates)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GlobalRateCreateResponse{
			Error: &e,
		})
		return
	}

	responseStatus := http.StatusCreated
	r := GlobalRateCreateResponse{}

	for _, editable := range rates {
		rate := editable.model()

		err := models.DB.Create(&rate).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newGlobalRate(rate)
		r.Data = append(r.Data, GlobalRateResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// GetGlobalRates returns all global rates, ordered by level.
func GetGlobalRates(c *gin.Context) {
	rates, err := store().GlobalRates(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GlobalRateListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]GlobalRate, 0)
	for _, rate := range rates {
		apiResources = append(apiResources, newGlobalRate(rate))
	}

	c.JSON(http.StatusOK, GlobalRateListResponse{
		Data: apiResources,
	})
}
