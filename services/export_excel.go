package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Orçamento"

// GenerateExcel creates a workbook with one sheet holding every section and
// the totals block, and returns the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetNameFor(data.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 40, 16, 16, 12, 10, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	// Rows 1-4: letterhead and budget identification.
	header := []struct {
		text  string
		style int
	}{
		{data.CompanyName, styles.title},
		{data.Subtitle, styles.subtitle},
		{data.Title, styles.heading},
		{fmt.Sprintf("Cliente: %s    Data: %s", orDash(data.Client), data.Date), styles.subtitle},
	}
	for i, h := range header {
		ref := fmt.Sprintf("%d", i+1)
		if err := f.MergeCell(sheetName, "A"+ref, lastCol+ref); err != nil {
			return nil, fmt.Errorf("merge header row %s: %w", ref, err)
		}
		f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(h.text))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, h.style)
	}

	row := 6
	for _, s := range data.Sections {
		ref := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+ref, s.Title)
		f.SetCellStyle(sheetName, "A"+ref, "A"+ref, styles.heading)
		row++

		ref = fmt.Sprintf("%d", row)
		headers := []string{"#", "Item", detailHeader(s), "Valor", "Qtd/Pessoas", "Dias", "Subtotal"}
		for i, h := range headers {
			f.SetCellValue(sheetName, columns[i]+ref, h)
		}
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, styles.header)
		row++

		for _, r := range s.Rows {
			ref = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+ref, r.Index)
			f.SetCellValue(sheetName, "B"+ref, sanitizeExcelCell(r.Description))
			f.SetCellValue(sheetName, "C"+ref, sanitizeExcelCell(r.Detail))
			f.SetCellValue(sheetName, "D"+ref, r.UnitValue)
			f.SetCellValue(sheetName, "E"+ref, r.Quantity)
			f.SetCellValue(sheetName, "F"+ref, r.Days)
			f.SetCellValue(sheetName, "G"+ref, r.Subtotal)
			f.SetCellStyle(sheetName, "A"+ref, "C"+ref, styles.item)
			f.SetCellStyle(sheetName, "D"+ref, "D"+ref, styles.money)
			f.SetCellStyle(sheetName, "E"+ref, "F"+ref, styles.item)
			f.SetCellStyle(sheetName, "G"+ref, "G"+ref, styles.money)
			row++
		}

		ref = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+ref, "Subtotal")
		f.SetCellStyle(sheetName, "F"+ref, "F"+ref, styles.summaryLabel)
		f.SetCellValue(sheetName, "G"+ref, s.Subtotal)
		f.SetCellStyle(sheetName, "G"+ref, "G"+ref, styles.summaryValue)
		row += 2
	}

	ref := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "A"+ref, "Resumo")
	f.SetCellStyle(sheetName, "A"+ref, "A"+ref, styles.heading)
	row++

	for _, line := range data.Summary {
		ref = fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+ref, "F"+ref); err != nil {
			return nil, fmt.Errorf("merge summary label: %w", err)
		}
		f.SetCellValue(sheetName, "A"+ref, line.Label)
		f.SetCellValue(sheetName, "G"+ref, line.Amount)
		if line.Emphasis {
			f.SetCellStyle(sheetName, "A"+ref, "F"+ref, styles.summaryLabel)
			f.SetCellStyle(sheetName, "G"+ref, "G"+ref, styles.summaryValue)
		} else {
			f.SetCellStyle(sheetName, "A"+ref, "F"+ref, styles.plainLabel)
			f.SetCellStyle(sheetName, "G"+ref, "G"+ref, styles.plainMoney)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, subtitle, heading, header int
	item, money                      int
	summaryLabel, summaryValue       int
	plainLabel, plainMoney           int
}

const brlNumFmt = `"R$" #,##0.00`

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	numFmt := brlNumFmt
	right := &excelize.Alignment{Horizontal: "right"}

	defs := []struct {
		name  string
		dst   *int
		style *excelize.Style
	}{
		{"title", &s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "#2E7D32"}}},
		{"subtitle", &s.subtitle, &excelize.Style{Font: &excelize.Font{Size: 10, Color: "#5A5A5A"}}},
		{"heading", &s.heading, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{"header", &s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{"item", &s.item, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{"money", &s.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &numFmt}},
		{"summary label", &s.summaryLabel, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: right}},
		{"summary value", &s.summaryValue, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &numFmt}},
		{"plain label", &s.plainLabel, &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: right}},
		{"plain money", &s.plainMoney, &excelize.Style{Font: &excelize.Font{Size: 10}, CustomNumFmt: &numFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetNameFor derives a valid worksheet name: at most 31 characters and
// none of the characters Excel rejects.
func sheetNameFor(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")

	runes := []rune(name)
	if len(runes) > 31 {
		name = strings.TrimSpace(string(runes[:31]))
	}
	if name == "" {
		return defaultSheetName
	}
	return name
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Spreadsheet programs interpret cells
// starting with =, +, -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
