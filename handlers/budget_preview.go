package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
)

type previewRequest struct {
	Document json.RawMessage `json:"document"`
	Actions  json.RawMessage `json:"actions"`
}

// HandleBudgetPreview returns a handler that applies a list of actions to a
// posted document and returns the result without persisting anything.
func HandleBudgetPreview() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		var req previewRequest
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return jsonError(e, http.StatusBadRequest, "Invalid request body")
			}
		}

		var raw any
		if len(req.Document) > 0 {
			if err := json.Unmarshal(req.Document, &raw); err != nil {
				return jsonError(e, http.StatusBadRequest, "Invalid budget document")
			}
		}

		var actions []budget.Action
		if len(req.Actions) > 0 && string(req.Actions) != "null" {
			actions, err = budget.DecodeActions(req.Actions)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
		}

		doc := budget.ReduceAll(budget.NormalizeDocument(raw), actions...)
		return e.JSON(http.StatusOK, newBudgetResponse("", doc))
	}
}
