package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
	"budgettool/store"
)

// HandleBudgetNew returns a handler that serves an unsaved default budget
// with zero totals, the starting point of the editor.
func HandleBudgetNew() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, newBudgetResponse("", budget.NewDocument()))
	}
}

// HandleBudgetCreate returns a handler that normalizes the posted document
// and stores it as a new budget.
func HandleBudgetCreate(app *pocketbase.PocketBase, gw store.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw, err := decodeRawDocument(e)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid budget document")
		}

		doc := budget.NormalizeDocument(raw)
		id, err := gw.Create(doc, actorID(e))
		if err != nil {
			return storeFailure(app, e, "create", "", err)
		}

		app.Logger().Info("budget created", "budget", id, "actor", actorID(e))
		return e.JSON(http.StatusCreated, newBudgetResponse(id, doc))
	}
}

// decodeRawDocument reads a JSON object from the request body. An empty
// body is treated as an empty object.
func decodeRawDocument(e *core.RequestEvent) (map[string]any, error) {
	body, err := readBody(e)
	if err != nil {
		return nil, err
	}
	raw := map[string]any{}
	if len(body) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
