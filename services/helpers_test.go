package services

import (
	"bytes"

	"budgettool/budget"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

var testLetterhead = Letterhead{Name: "Relevo Consultoria Ambiental", Subtitle: "Sistema de Orçamentos"}

// scenarioDocument is a coordinator for a month plus a biologist for half a
// month, with 33% of surcharges and a 10% discount.
func scenarioDocument() budget.Document {
	return budget.NormalizeDocument(map[string]any{
		"metadata": map[string]any{"name": "Monitoramento de Fauna", "client": "ACME Mineração", "date": "2025-03-10", "discountPercent": 10},
		"parameters": map[string]any{
			"tax": 0.07, "profit": 0.05, "workingCapitalFund": 0.05,
			"payrollCharges": 0.10, "fiscalExpenses": 0.03, "acquisitionCommission": 0.03,
		},
		"coordination":  []any{map[string]any{"role": "Coordenador", "professionalLevel": "Sênior", "monthlyRate": 5000, "quantity": 1, "days": 30}},
		"professionals": []any{map[string]any{"role": "Biólogo", "monthlyFee": 10000, "people": 1, "days": 15}},
		"logistics":     []any{map[string]any{"description": "=cmd", "unitValue": 0, "unit": "km", "quantity": 0, "days": 0}},
	})
}

func scenarioExport() ExportData {
	doc := scenarioDocument()
	return BuildExportData(doc, budget.ComputeTotals(doc), testLetterhead)
}
