package budget

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Field aliases accepted on load. The first key is canonical; the rest are
// names written by older revisions of the editor and win only when the
// canonical key is absent or null.
var (
	metadataKeys   = []string{"metadata"}
	parametersKeys = []string{"parameters", "parametros"}

	listKeys = map[Category][]string{
		CategoryCoordination:  {"coordination", "coordenacao"},
		CategoryProfessionals: {"professionals", "profissionais"},
		CategoryOneOffValues:  {"oneOffValues", "valoresUnicos"},
		CategoryLogistics:     {"logistics", "logistica"},
	}
)

// NormalizeDocument merges raw over the default document and coerces every
// field into its canonical form. raw may be a decoded JSON value, a Document
// or anything else; unusable input yields the default document.
func NormalizeDocument(raw any) Document {
	m := asMap(raw)
	doc := NewDocument()

	doc.Metadata = normalizeMetadata(asMap(first(m, metadataKeys...)))
	doc.Parameters = normalizeParameters(asMap(first(m, parametersKeys...)))
	doc.Coordination = NormalizeCoordination(first(m, listKeys[CategoryCoordination]...))
	doc.Professionals = NormalizeProfessionals(first(m, listKeys[CategoryProfessionals]...))
	doc.OneOffValues = NormalizeOneOffValues(first(m, listKeys[CategoryOneOffValues]...))
	doc.Logistics = NormalizeLogistics(first(m, listKeys[CategoryLogistics]...))
	return doc
}

// RawSchemaVersion reports the schema version recorded in a persisted
// document before normalization. Documents that predate versioning report 0.
func RawSchemaVersion(raw any) int {
	meta := asMap(first(asMap(raw), metadataKeys...))
	return int(number(meta["schemaVersion"]))
}

// fieldAliases maps each canonical field to the older names accepted for it,
// in priority order.
type fieldAliases map[string][]string

var (
	metadataAliases = fieldAliases{
		"name":            {"nome"},
		"client":          {"cliente"},
		"date":            {"data"},
		"discountPercent": {"descontoPercentual", "desconto"},
	}
	parametersAliases = fieldAliases{
		"tax":                   {"imposto"},
		"profit":                {"lucro"},
		"workingCapitalFund":    {"fundoGiro"},
		"payrollCharges":        {"encargosPessoal"},
		"fiscalExpenses":        {"despesasFiscais"},
		"acquisitionCommission": {"comissaoCaptacao"},
	}
	itemAliases = map[Category]fieldAliases{
		CategoryCoordination: {
			"role":              {"cargo"},
			"professionalLevel": {"profissional"},
			"monthlyRate":       {"subtotal", "valor"},
			"quantity":          {"quant", "qtd"},
			"days":              {"dias"},
		},
		CategoryProfessionals: {
			"role":       {"cargo"},
			"monthlyFee": {"prolabore", "valor"},
			"people":     {"pessoas", "qtd"},
			"days":       {"dias"},
		},
		CategoryOneOffValues: {
			"description": {"item"},
			"unitValue":   {"valor"},
			"people":      {"pessoas"},
			"days":        {"dias"},
		},
		CategoryLogistics: {
			"description": {"item"},
			"unitValue":   {"valor"},
			"unit":        {"unidade"},
			"quantity":    {"qtd", "pessoas"},
			"days":        {"dias"},
		},
	}
)

// get returns the canonical field or, when it is absent or null, the first
// alias holding a value.
func (a fieldAliases) get(m map[string]any, canonical string) any {
	return first(m, append([]string{canonical}, a[canonical]...)...)
}

// canonicalPatch rewrites the alias keys of an edit patch to their canonical
// names so that merging it over a normalized value replaces the old field.
// A canonical key in the patch wins over its aliases, as on load.
func (a fieldAliases) canonicalPatch(patch map[string]any) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	for canonical, aliases := range a {
		_, explicit := patch[canonical]
		for _, alias := range aliases {
			v, ok := patch[alias]
			if !ok {
				continue
			}
			delete(out, alias)
			if !explicit && v != nil {
				out[canonical] = v
				explicit = true
			}
		}
	}
	return out
}

func normalizeMetadata(m map[string]any) Metadata {
	a := metadataAliases
	return Metadata{
		Name:            text(a.get(m, "name")),
		Client:          text(a.get(m, "client")),
		Date:            text(a.get(m, "date")),
		DiscountPercent: number(a.get(m, "discountPercent")),
		SchemaVersion:   SchemaVersion,
	}
}

func normalizeParameters(m map[string]any) Parameters {
	a := parametersAliases
	return Parameters{
		Tax:                   number(a.get(m, "tax")),
		Profit:                number(a.get(m, "profit")),
		WorkingCapitalFund:    number(a.get(m, "workingCapitalFund")),
		PayrollCharges:        number(a.get(m, "payrollCharges")),
		FiscalExpenses:        number(a.get(m, "fiscalExpenses")),
		AcquisitionCommission: number(a.get(m, "acquisitionCommission")),
	}
}

// NormalizeCoordination coerces a raw coordination list.
func NormalizeCoordination(raw any) []CoordinationItem {
	a := itemAliases[CategoryCoordination]
	return normalizeList(raw, CategoryCoordination, func(m map[string]any, id string) CoordinationItem {
		return CoordinationItem{
			ID:                id,
			Role:              text(a.get(m, "role")),
			ProfessionalLevel: text(a.get(m, "professionalLevel")),
			MonthlyRate:       number(a.get(m, "monthlyRate")),
			Quantity:          number(a.get(m, "quantity")),
			Days:              number(a.get(m, "days")),
		}
	})
}

// NormalizeProfessionals coerces a raw professionals list.
func NormalizeProfessionals(raw any) []ProfessionalItem {
	a := itemAliases[CategoryProfessionals]
	return normalizeList(raw, CategoryProfessionals, func(m map[string]any, id string) ProfessionalItem {
		return ProfessionalItem{
			ID:         id,
			Role:       text(a.get(m, "role")),
			MonthlyFee: number(a.get(m, "monthlyFee")),
			People:     number(a.get(m, "people")),
			Days:       number(a.get(m, "days")),
		}
	})
}

// NormalizeOneOffValues coerces a raw one-off values list.
func NormalizeOneOffValues(raw any) []OneOffItem {
	a := itemAliases[CategoryOneOffValues]
	return normalizeList(raw, CategoryOneOffValues, func(m map[string]any, id string) OneOffItem {
		return OneOffItem{
			ID:          id,
			Description: text(a.get(m, "description")),
			UnitValue:   number(a.get(m, "unitValue")),
			People:      number(a.get(m, "people")),
			Days:        number(a.get(m, "days")),
		}
	})
}

// NormalizeLogistics coerces a raw logistics list. A missing unit label
// defaults to "unidade"; unknown labels are kept as given.
func NormalizeLogistics(raw any) []LogisticsItem {
	a := itemAliases[CategoryLogistics]
	return normalizeList(raw, CategoryLogistics, func(m map[string]any, id string) LogisticsItem {
		unit := text(a.get(m, "unit"))
		if unit == "" {
			unit = defaultLogistUnit
		}
		return LogisticsItem{
			ID:          id,
			Description: text(a.get(m, "description")),
			UnitValue:   number(a.get(m, "unitValue")),
			Unit:        unit,
			Quantity:    number(a.get(m, "quantity")),
			Days:        number(a.get(m, "days")),
		}
	})
}

// normalizeList drops empty elements, assigns unique ids and builds one item
// per remaining element. Explicit ids are kept unless they repeat an earlier
// one; everything else gets "{prefix}-{index+1}" or the next free number.
func normalizeList[T any](raw any, c Category, build func(m map[string]any, id string) T) []T {
	var elems []map[string]any
	for _, el := range asList(raw) {
		if blank(el) {
			continue
		}
		elems = append(elems, asMap(el))
	}

	explicit := make([]string, len(elems))
	reserved := make(map[string]bool, len(elems))
	for i, m := range elems {
		id := text(m["id"])
		if id == "" || reserved[id] {
			continue
		}
		explicit[i] = id
		reserved[id] = true
	}

	out := make([]T, 0, len(elems))
	used := make(map[string]bool, len(elems))
	for i, m := range elems {
		id := explicit[i]
		if id == "" {
			id = freeID(c.idPrefix(), i+1, func(s string) bool { return reserved[s] || used[s] })
		}
		used[id] = true
		out = append(out, build(m, id))
	}
	return out
}

// blank reports whether a list element is null or a falsy scalar (false,
// 0, ""). Such entries were left behind by older editors and carry no item.
func blank(el any) bool {
	switch v := el.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case float64:
		return v == 0 || math.IsNaN(v)
	case int:
		return v == 0
	}
	return false
}

// freeID returns "{prefix}-{n}" for the smallest n >= start not taken.
func freeID(prefix string, start int, taken func(string) bool) string {
	for n := start; ; n++ {
		id := prefix + "-" + strconv.Itoa(n)
		if !taken(id) {
			return id
		}
	}
}

// number coerces v to a finite float64. nil, NaN, infinities and values
// that cannot be parsed all become 0.
func number(v any) float64 {
	if v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// text coerces v to a string; nil becomes "".
func text(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// first returns the value of the first key present with a non-nil value.
func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// asMap views v as a JSON object. Typed values are converted through their
// JSON encoding so Documents and items normalize like decoded payloads.
func asMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return t
	}
	var m map[string]any
	if err := roundTrip(v, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// asList views v as a JSON array; anything that is not a list is empty.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	}
	var l []any
	if err := roundTrip(v, &l); err != nil {
		return nil
	}
	return l
}

func roundTrip(v any, dst any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}
	return json.Unmarshal(data, dst)
}
