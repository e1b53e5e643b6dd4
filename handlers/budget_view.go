package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/store"
)

// HandleBudgetView returns a handler that serves one budget with its totals
// and validation issues.
func HandleBudgetView(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing budget ID")
		}

		stored, err := gw.Read(id)
		if err != nil {
			return storeFailure(app, e, "read", id, err)
		}
		if stored == nil {
			return jsonError(e, http.StatusNotFound, "Budget not found")
		}

		return e.JSON(http.StatusOK, storedResponse(stored))
	}
}
