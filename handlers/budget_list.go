package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
	"budgettool/store"
)

type budgetListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Client     string    `json:"client"`
	Date       string    `json:"date"`
	FinalTotal float64   `json:"finalTotal"`
	Updated    time.Time `json:"updated"`
}

// HandleBudgetList returns a handler that lists every budget, most recent first.
func HandleBudgetList(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list, err := gw.List()
		if err != nil {
			return storeFailure(app, e, "list", "", err)
		}

		items := make([]budgetListItem, 0, len(list))
		for _, b := range list {
			items = append(items, budgetListItem{
				ID:         b.ID,
				Name:       b.Document.Metadata.Name,
				Client:     b.Document.Metadata.Client,
				Date:       b.Document.Metadata.Date,
				FinalTotal: budget.ComputeTotals(b.Document).FinalTotal,
				Updated:    b.Updated,
			})
		}
		return e.JSON(http.StatusOK, items)
	}
}
