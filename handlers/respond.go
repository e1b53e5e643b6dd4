package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
	"budgettool/metrics"
	"budgettool/store"
)

// AnonymousActor is recorded when a request carries no identity.
const AnonymousActor = "anonymous"

// ActorHeader lets trusted callers name the actor when no auth record is present.
const ActorHeader = "X-Actor-ID"

const maxBodyBytes = 5 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// budgetResponse is the JSON view of one budget.
type budgetResponse struct {
	ID             string          `json:"id,omitempty"`
	Document       budget.Document `json:"document"`
	Totals         budget.Totals   `json:"totals"`
	Issues         []budget.Issue  `json:"issues"`
	FormulaVersion string          `json:"formulaVersion"`
	CreatedBy      string          `json:"createdBy,omitempty"`
	UpdatedBy      string          `json:"updatedBy,omitempty"`
}

func newBudgetResponse(id string, doc budget.Document) budgetResponse {
	metrics.TotalsComputed.Inc()

	issues := budget.Validate(doc)
	if issues == nil {
		issues = []budget.Issue{}
	}
	return budgetResponse{
		ID:             id,
		Document:       doc,
		Totals:         budget.ComputeTotals(doc),
		Issues:         issues,
		FormulaVersion: budget.FormulaVersion,
	}
}

func storedResponse(s *store.StoredBudget) budgetResponse {
	resp := newBudgetResponse(s.ID, s.Document)
	resp.CreatedBy = s.CreatedBy
	resp.UpdatedBy = s.UpdatedBy
	if s.FormulaVersion != "" {
		resp.FormulaVersion = s.FormulaVersion
	}
	return resp
}

// jsonError writes {"error": message} with the given status.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, errorResponse{Error: message})
}

// storeFailure maps gateway errors to HTTP statuses, logging the unexpected ones.
func storeFailure(app *pocketbase.PocketBase, e *core.RequestEvent, op, id string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return jsonError(e, http.StatusNotFound, "Budget not found")
	case errors.Is(err, store.ErrMissingActor):
		return jsonError(e, http.StatusBadRequest, "Missing actor")
	}
	app.Logger().Error("budget store failure", "operation", op, "budget", id, "error", err)
	return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// readBody returns the request body, bounded to maxBodyBytes.
func readBody(e *core.RequestEvent) ([]byte, error) {
	if e.Request.Body == nil {
		return nil, errors.New("empty body")
	}
	b, err := io.ReadAll(io.LimitReader(e.Request.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) > maxBodyBytes {
		return nil, errors.New("body too large")
	}
	return b, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}
