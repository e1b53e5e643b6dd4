package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/store"
)

// HandleBudgetDelete returns a handler that deletes a budget.
func HandleBudgetDelete(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing budget ID")
		}

		if err := gw.Delete(id); err != nil {
			return storeFailure(app, e, "delete", id, err)
		}

		app.Logger().Info("budget deleted", "budget", id, "actor", actorID(e))
		return e.NoContent(http.StatusNoContent)
	}
}
