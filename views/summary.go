// Package views renders read-only HTML pages.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"budgettool/budget"
	"budgettool/services"
)

// Summary is everything the budget summary page shows.
type Summary struct {
	ID     string
	Data   services.ExportData
	Issues []budget.Issue
}

// BudgetSummary renders a printable one-page overview of a budget.
func BudgetSummary(s Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		d := s.Data

		p.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>`)
		p.text(d.Title)
		p.raw(`</title><style>` + summaryCSS + `</style></head><body>`)

		p.raw(`<header><h1>`)
		p.text(d.CompanyName)
		p.raw(`</h1><p class="muted">`)
		p.text(d.Subtitle)
		p.raw(`</p></header>`)

		p.raw(`<section id="budget" data-id="`)
		p.text(s.ID)
		p.raw(`"><h2>`)
		p.text(d.Title)
		p.raw(`</h2><p>Cliente: `)
		p.text(orDash(d.Client))
		p.raw(` &middot; Data: `)
		p.text(d.Date)
		p.raw(`</p></section>`)

		for _, sec := range d.Sections {
			p.raw(`<section class="category"><h3>`)
			p.text(sec.Title)
			p.raw(`</h3><table><thead><tr><th>#</th><th>Item</th><th>Detalhe</th><th>Valor</th><th>Qtd</th><th>Dias</th><th>Subtotal</th></tr></thead><tbody>`)
			for _, r := range sec.Rows {
				p.raw(`<tr><td>`)
				p.text(r.Index)
				p.raw(`</td><td>`)
				p.text(orDash(r.Description))
				p.raw(`</td><td>`)
				p.text(orDash(r.Detail))
				p.raw(`</td><td class="num">`)
				p.text(services.FormatBRL(r.UnitValue))
				p.raw(`</td><td class="num">`)
				p.text(fmt.Sprintf("%g", r.Quantity))
				p.raw(`</td><td class="num">`)
				p.text(fmt.Sprintf("%g", r.Days))
				p.raw(`</td><td class="num">`)
				p.text(services.FormatBRL(r.Subtotal))
				p.raw(`</td></tr>`)
			}
			p.raw(`</tbody><tfoot><tr><td colspan="6">Subtotal</td><td class="num">`)
			p.text(services.FormatBRL(sec.Subtotal))
			p.raw(`</td></tr></tfoot></table></section>`)
		}

		p.raw(`<section id="totals"><h3>Resumo</h3><table>`)
		for _, line := range d.Summary {
			if line.Emphasis {
				p.raw(`<tr class="emphasis">`)
			} else {
				p.raw(`<tr>`)
			}
			p.raw(`<td>`)
			p.text(line.Label)
			p.raw(`</td><td class="num">`)
			p.text(services.FormatBRL(line.Amount))
			p.raw(`</td></tr>`)
		}
		p.raw(`</table></section>`)

		if len(s.Issues) > 0 {
			p.raw(`<section id="issues"><h3>Pendências</h3><ul>`)
			for _, is := range s.Issues {
				p.raw(`<li>`)
				p.text(issueText(is))
				p.raw(`</li>`)
			}
			p.raw(`</ul></section>`)
		}

		p.raw(`<footer class="muted">Gerado em `)
		p.text(d.GeneratedDate)
		p.raw(`</footer></body></html>`)
		return p.err
	})
}

func issueText(is budget.Issue) string {
	if is.Row > 0 {
		return fmt.Sprintf("%s, linha %d, %s: %s", is.Section, is.Row, is.Field, is.Message)
	}
	return fmt.Sprintf("%s, %s: %s", is.Section, is.Field, is.Message)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// page writes markup, remembering the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

const summaryCSS = `body{font-family:sans-serif;margin:2rem;color:#222}` +
	`h1{color:#2e7d32;margin:0}.muted{color:#5a5a5a}` +
	`table{border-collapse:collapse;width:100%;margin-bottom:1rem}` +
	`th{background:#2e7d32;color:#fff;text-align:left}` +
	`td,th{border:1px solid #ccc;padding:.25rem .5rem}` +
	`.num{text-align:right}.emphasis{font-weight:bold}`
