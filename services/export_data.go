package services

import (
	"fmt"
	"time"

	"budgettool/budget"
)

// Letterhead identifies the issuing company on every exported document.
type Letterhead struct {
	Name     string
	Subtitle string
}

// ExportRow is one line item as it appears in an export.
type ExportRow struct {
	Index       string // 1-based position within its section
	Description string
	Detail      string // professional level or logistics unit
	UnitValue   float64
	Quantity    float64 // quantity or people, depending on the section
	Days        float64
	Subtotal    float64
}

// ExportSection is a non-empty category of the budget.
type ExportSection struct {
	Category budget.Category
	Title    string
	Rows     []ExportRow
	Subtotal float64
}

// SummaryLine is a labelled amount in the totals block.
type SummaryLine struct {
	Label    string
	Amount   float64
	Emphasis bool
}

// ExportData holds everything the PDF, Excel, CSV and DOCX renderers need.
type ExportData struct {
	CompanyName   string
	Subtitle      string
	Title         string
	Client        string
	Date          string // DD/MM/YYYY
	Sections      []ExportSection
	Summary       []SummaryLine
	FinalTotal    float64
	GeneratedDate string
}

var sectionTitles = map[budget.Category]string{
	budget.CategoryCoordination:  "Coordenação",
	budget.CategoryProfessionals: "Profissionais",
	budget.CategoryOneOffValues:  "Valores Únicos",
	budget.CategoryLogistics:     "Logística",
}

// SectionTitle returns the display title of a category.
func SectionTitle(c budget.Category) string {
	if t, ok := sectionTitles[c]; ok {
		return t
	}
	return string(c)
}

// BuildExportData flattens a document and its totals into export form.
// Empty categories are left out.
func BuildExportData(doc budget.Document, totals budget.Totals, company Letterhead) ExportData {
	title := doc.Metadata.Name
	if title == "" {
		title = "Orçamento"
	}

	data := ExportData{
		CompanyName:   company.Name,
		Subtitle:      company.Subtitle,
		Title:         title,
		Client:        doc.Metadata.Client,
		Date:          FormatDateBR(doc.Metadata.Date),
		FinalTotal:    totals.FinalTotal,
		GeneratedDate: time.Now().Format("02/01/2006"),
	}

	for _, c := range budget.Categories {
		rows := exportRows(doc, c)
		if len(rows) == 0 {
			continue
		}
		data.Sections = append(data.Sections, ExportSection{
			Category: c,
			Title:    SectionTitle(c),
			Rows:     rows,
			Subtotal: totals.CategorySubtotal(c),
		})
	}

	data.Summary = summaryLines(doc, totals)
	return data
}

func exportRows(doc budget.Document, c budget.Category) []ExportRow {
	var rows []ExportRow
	index := func(i int) string { return fmt.Sprintf("%d", i+1) }

	switch c {
	case budget.CategoryCoordination:
		for i, it := range doc.Coordination {
			rows = append(rows, ExportRow{
				Index: index(i), Description: it.Role, Detail: it.ProfessionalLevel,
				UnitValue: it.MonthlyRate, Quantity: it.Quantity, Days: it.Days, Subtotal: it.Subtotal(),
			})
		}
	case budget.CategoryProfessionals:
		for i, it := range doc.Professionals {
			rows = append(rows, ExportRow{
				Index: index(i), Description: it.Role,
				UnitValue: it.MonthlyFee, Quantity: it.People, Days: it.Days, Subtotal: it.Subtotal(),
			})
		}
	case budget.CategoryOneOffValues:
		for i, it := range doc.OneOffValues {
			rows = append(rows, ExportRow{
				Index: index(i), Description: it.Description,
				UnitValue: it.UnitValue, Quantity: it.People, Days: it.Days, Subtotal: it.Subtotal(),
			})
		}
	case budget.CategoryLogistics:
		for i, it := range doc.Logistics {
			rows = append(rows, ExportRow{
				Index: index(i), Description: it.Description, Detail: it.Unit,
				UnitValue: it.UnitValue, Quantity: it.Quantity, Days: it.Days, Subtotal: it.Subtotal(),
			})
		}
	}
	return rows
}

func summaryLines(doc budget.Document, t budget.Totals) []SummaryLine {
	p := doc.Parameters
	withRate := func(label string, rate float64) string {
		return fmt.Sprintf("%s (%s)", label, FormatPercent(rate))
	}

	return []SummaryLine{
		{Label: "Honorários técnicos", Amount: t.Fees},
		{Label: "Custos operacionais", Amount: t.OperationalCosts},
		{Label: "Custos diretos", Amount: t.DirectSubtotal, Emphasis: true},
		{Label: withRate("Impostos", p.Tax), Amount: t.Indirect.Tax},
		{Label: withRate("Lucro", p.Profit), Amount: t.Indirect.Profit},
		{Label: withRate("Fundo de giro", p.WorkingCapitalFund), Amount: t.Indirect.WorkingCapitalFund},
		{Label: withRate("Encargos de pessoal", p.PayrollCharges), Amount: t.Indirect.PayrollCharges},
		{Label: withRate("Despesas fiscais", p.FiscalExpenses), Amount: t.Indirect.FiscalExpenses},
		{Label: withRate("Comissão de captação", p.AcquisitionCommission), Amount: t.Indirect.AcquisitionCommission},
		{Label: "Custos indiretos", Amount: t.IndirectSubtotal, Emphasis: true},
		{Label: "Base tributável", Amount: t.TaxableBase},
		{Label: withRate("Tributos sobre a base", p.Tax), Amount: t.TaxAmount},
		{Label: "Total antes do desconto", Amount: t.AmountBeforeDiscount},
		{Label: withRate("Desconto", doc.Metadata.DiscountPercent/100), Amount: -t.DiscountAmount},
		{Label: "Total final", Amount: t.FinalTotal, Emphasis: true},
	}
}
