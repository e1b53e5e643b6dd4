package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

var csvHeader = []string{"Seção", "Item", "Unidade", "Valor", "Qtd/Pessoas", "Dias", "Subtotal"}

// GenerateCSV writes every item as a semicolon-separated row, followed by a
// blank line and the totals block. A UTF-8 BOM is prepended so spreadsheet
// programs detect the encoding.
func GenerateCSV(data ExportData) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	records := [][]string{csvHeader}
	for _, s := range data.Sections {
		for _, r := range s.Rows {
			records = append(records, []string{
				s.Title,
				sanitizeExcelCell(r.Description),
				orDash(sanitizeExcelCell(r.Detail)),
				FormatAmount(r.UnitValue),
				formatPlain(r.Quantity),
				formatPlain(r.Days),
				FormatAmount(r.Subtotal),
			})
		}
	}

	records = append(records, []string{})
	for _, line := range data.Summary {
		records = append(records, []string{line.Label, FormatAmount(line.Amount)})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatPlain(v float64) string {
	return fmt.Sprintf("%g", v)
}
