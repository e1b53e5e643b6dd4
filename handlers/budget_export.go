package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgettool/budget"
	"budgettool/metrics"
	"budgettool/services"
	"budgettool/store"
	"budgettool/views"
)

type exportFormat struct {
	contentType string
	generate    func(services.ExportData) ([]byte, error)
}

var exportFormats = map[string]exportFormat{
	"pdf":  {"application/pdf", services.GeneratePDF},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", services.GenerateExcel},
	"csv":  {"text/csv; charset=utf-8", services.GenerateCSV},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", services.GenerateDOCX},
}

// loadExportData reads a budget and flattens it for the renderers. A nil
// result with a nil error means the budget does not exist.
func loadExportData(gw store.Gateway, id string, letterhead services.Letterhead) (*services.ExportData, error) {
	stored, err := gw.Read(id)
	if err != nil || stored == nil {
		return nil, err
	}
	metrics.TotalsComputed.Inc()
	data := services.BuildExportData(stored.Document, budget.ComputeTotals(stored.Document), letterhead)
	return &data, nil
}

// HandleBudgetExport returns a handler that downloads a budget as PDF,
// XLSX, CSV or DOCX, chosen by the {format} path segment.
func HandleBudgetExport(app *pocketbase.PocketBase, gw store.Gateway, letterhead services.Letterhead) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing budget ID")
		}
		name := e.Request.PathValue("format")
		format, ok := exportFormats[name]
		if !ok {
			return jsonError(e, http.StatusBadRequest, fmt.Sprintf("Unsupported export format %q", name))
		}

		data, err := loadExportData(gw, id, letterhead)
		if err != nil {
			return storeFailure(app, e, "read", id, err)
		}
		if data == nil {
			return jsonError(e, http.StatusNotFound, "Budget not found")
		}

		out, err := format.generate(*data)
		if err != nil {
			app.Logger().Error("export failed", "budget", id, "format", name, "error", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate export")
		}
		metrics.Exports.WithLabelValues(name).Inc()

		filename := fmt.Sprintf("Orcamento_%s_%d.%s", sanitizeFilename(data.Title), time.Now().Year(), name)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return e.Blob(http.StatusOK, format.contentType, out)
	}
}

// HandleBudgetSummary returns a handler that renders a read-only HTML page
// for a budget.
func HandleBudgetSummary(app *pocketbase.PocketBase, gw store.Gateway, letterhead services.Letterhead) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing budget ID")
		}

		stored, err := gw.Read(id)
		if err != nil {
			app.Logger().Error("summary: read failed", "budget", id, "error", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if stored == nil {
			return e.String(http.StatusNotFound, "Budget not found")
		}

		metrics.TotalsComputed.Inc()
		component := views.BudgetSummary(views.Summary{
			ID:     stored.ID,
			Data:   services.BuildExportData(stored.Document, budget.ComputeTotals(stored.Document), letterhead),
			Issues: budget.Validate(stored.Document),
		})

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}
