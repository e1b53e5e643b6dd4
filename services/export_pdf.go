package services

import (
	"fmt"
	"math"
	"strings"

	"budgettool/budget"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	brandColor = &props.Color{Red: 46, Green: 125, Blue: 50}
	mutedColor = &props.Color{Red: 90, Green: 90, Blue: 90}
	white      = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GeneratePDF renders a budget as an A4 portrait PDF using maroto/v2.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addLetterhead(m, data)
	for _, s := range data.Sections {
		addSection(m, s)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addLetterhead adds the company block and the budget identification.
func addLetterhead(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.CompanyName, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: brandColor,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(data.Subtitle, props.Text{Size: 9, Align: align.Left, Color: mutedColor}),
			),
		),
		row.New(4),
		row.New(9).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
		row.New(6).Add(
			col.New(8).Add(
				text.New("Cliente: "+orDash(data.Client), props.Text{Size: 9, Align: align.Left, Color: mutedColor}),
			),
			col.New(4).Add(
				text.New("Data: "+data.Date, props.Text{Size: 9, Align: align.Right, Color: mutedColor}),
			),
		),
		row.New(4),
	)
}

// addSection adds a category heading, its item table and the subtotal row.
func addSection(m core.Maroto, s ExportSection) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(s.Title, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left, Color: brandColor}),
			),
		),
	)

	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: white}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: brandColor}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Item", headerLeft)).WithStyle(headerCell),
			col.New(2).Add(text.New(detailHeader(s), headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Valor", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Qtd", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Dias", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Subtotal", headerText)).WithStyle(headerCell),
		),
	)

	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right
	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, r := range s.Rows {
		cols := []core.Col{
			col.New(1).Add(text.New(r.Index, base)),
			col.New(3).Add(text.New(orDash(r.Description), left)),
			col.New(2).Add(text.New(orDash(r.Detail), base)),
			col.New(2).Add(text.New(FormatBRL(r.UnitValue), right)),
			col.New(1).Add(text.New(formatQty(r.Quantity), right)),
			col.New(1).Add(text.New(formatQty(r.Days), right)),
			col.New(2).Add(text.New(FormatBRL(r.Subtotal), right)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(stripe)
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}

	bold := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New("Subtotal "+s.Title, bold)),
			col.New(2).Add(text.New(FormatBRL(s.Subtotal), bold)),
		),
		row.New(4),
	)
}

// addSummary adds the totals block at the end of the document.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Resumo", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left, Color: brandColor}),
			),
		),
	)

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	for _, line := range data.Summary {
		style := props.Text{Size: 8, Align: align.Right}
		if line.Emphasis {
			style.Style = fontstyle.Bold
			style.Size = 9
		}
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(line.Label, style)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatBRL(line.Amount), style)).WithStyle(summaryCell),
			),
		)
	}
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Gerado em %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

func detailHeader(s ExportSection) string {
	switch s.Category {
	case budget.CategoryCoordination:
		return "Nível"
	case budget.CategoryLogistics:
		return "Unidade"
	}
	return "-"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// formatQty prints whole numbers without decimals and anything else with
// two, using a decimal comma.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return strings.Replace(fmt.Sprintf("%.2f", qty), ".", ",", 1)
}
