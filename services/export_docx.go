package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	docxBorders = `<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="999999"/>` +
		`</w:tblBorders>`
)

// GenerateDOCX renders a minimal WordprocessingML package with the
// letterhead, one table per section and the totals table.
func GenerateDOCX(data ExportData) ([]byte, error) {
	var body docxBody
	body.paragraph(data.CompanyName, 32, true)
	body.paragraph(data.Subtitle, 18, false)
	body.paragraph(data.Title, 28, true)
	body.paragraph(fmt.Sprintf("Cliente: %s", orDash(data.Client)), 20, false)
	body.paragraph(fmt.Sprintf("Data: %s", data.Date), 20, false)

	for _, s := range data.Sections {
		body.paragraph(s.Title, 24, true)
		rows := [][]string{{"#", "Item", detailHeader(s), "Valor", "Qtd/Pessoas", "Dias", "Subtotal"}}
		for _, r := range s.Rows {
			rows = append(rows, []string{
				r.Index, orDash(r.Description), orDash(r.Detail),
				FormatBRL(r.UnitValue), formatQty(r.Quantity), formatQty(r.Days), FormatBRL(r.Subtotal),
			})
		}
		rows = append(rows, []string{"", "Subtotal", "", "", "", "", FormatBRL(s.Subtotal)})
		body.table(rows)
	}

	body.paragraph("Resumo", 24, true)
	summary := make([][]string, 0, len(data.Summary))
	for _, line := range data.Summary {
		summary = append(summary, []string{line.Label, FormatBRL(line.Amount)})
	}
	body.table(summary)
	body.paragraph("Gerado em "+data.GeneratedDate, 16, false)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", body.document()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return buf.Bytes(), nil
}

type docxBody struct {
	strings.Builder
}

// paragraph appends a single-run paragraph; size is in half-points.
func (b *docxBody) paragraph(text string, size int, bold bool) {
	b.WriteString("<w:p>")
	b.run(text, size, bold)
	b.WriteString("</w:p>")
}

func (b *docxBody) run(text string, size int, bold bool) {
	b.WriteString("<w:r><w:rPr>")
	if bold {
		b.WriteString("<w:b/>")
	}
	fmt.Fprintf(b, `<w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">`, size)
	xml.EscapeText(b, []byte(text))
	b.WriteString("</w:t></w:r>")
}

// table appends a bordered table; the first row of a section table is its header.
func (b *docxBody) table(rows [][]string) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/>` + docxBorders + `</w:tblPr>`)
	for _, cells := range rows {
		b.WriteString("<w:tr>")
		for _, c := range cells {
			b.WriteString("<w:tc><w:p>")
			b.run(c, 18, false)
			b.WriteString("</w:p></w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	b.paragraph("", 10, false)
}

func (b *docxBody) document() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		b.String() +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
}
