package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
	"budgettool/store"
)

// HandleBudgetUpdate returns a handler that replaces a budget's document
// wholesale, the same as a SET_ALL action.
func HandleBudgetUpdate(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing budget ID")
		}

		raw, err := decodeRawDocument(e)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid budget document")
		}

		doc := budget.Reduce(budget.NewDocument(), budget.SetAll{Raw: raw})
		if err := gw.Update(id, doc, actorID(e)); err != nil {
			return storeFailure(app, e, "update", id, err)
		}

		return e.JSON(http.StatusOK, newBudgetResponse(id, doc))
	}
}

// HandleBudgetAction returns a handler that applies one mutation action to a
// stored budget and persists the result.
func HandleBudgetAction(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing budget ID")
		}

		body, err := readBody(e)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		action, err := budget.DecodeAction(body)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		stored, err := gw.Read(id)
		if err != nil {
			return storeFailure(app, e, "read", id, err)
		}
		if stored == nil {
			return jsonError(e, http.StatusNotFound, "Budget not found")
		}

		doc := budget.Reduce(stored.Document, action)
		if err := gw.Update(id, doc, actorID(e)); err != nil {
			return storeFailure(app, e, "update", id, err)
		}

		return e.JSON(http.StatusOK, newBudgetResponse(id, doc))
	}
}
