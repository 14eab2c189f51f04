package v1

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/httputil"
	"github.com/forecast-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterExpenseRoutes registers the routes for expenses with the
// RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExpenseList)
	r.POST("", CreateExpenses)
}

func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateExpenses writes monthly direct expenses. A row for an existing
// (project, month) key replaces the amount. After the writes, every
// affected project is recalculated from the earliest written month on
// its latest forecast version.
func CreateExpenses(c *gin.Context) {
	var expenses []ExpenseEditable

	err := httputil.BindData(c, &expenses)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	s := store()
	responseStatus := http.StatusCreated
	r := ExpenseCreateResponse{}

	earliest := make(map[uuid.UUID]types.Month)

	for _, editable := range expenses {
		expense := editable.model()

		err := s.UpsertExpense(c.Request.Context(), &expense)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		if month, ok := earliest[expense.ProjectID]; !ok || expense.Month.Before(month) {
			earliest[expense.ProjectID] = expense.Month
		}

		data := newExpense(expense)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
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
