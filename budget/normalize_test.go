package budget

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture %q: %v", s, err)
	}
	return v
}

func assertFinite(t *testing.T, doc Document) {
	t.Helper()
	check := func(where string, vals ...float64) {
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: non-finite value %v", where, v)
			}
		}
	}
	p := doc.Parameters
	check("parameters", p.Tax, p.Profit, p.WorkingCapitalFund, p.PayrollCharges, p.FiscalExpenses, p.AcquisitionCommission)
	check("metadata", doc.Metadata.DiscountPercent)
	for _, it := range doc.Coordination {
		check("coordination", it.MonthlyRate, it.Quantity, it.Days)
	}
	for _, it := range doc.Professionals {
		check("professionals", it.MonthlyFee, it.People, it.Days)
	}
	for _, it := range doc.OneOffValues {
		check("oneOffValues", it.UnitValue, it.People, it.Days)
	}
	for _, it := range doc.Logistics {
		check("logistics", it.UnitValue, it.Quantity, it.Days)
	}
	if doc.Coordination == nil || doc.Professionals == nil || doc.OneOffValues == nil || doc.Logistics == nil {
		t.Error("item lists must never be nil")
	}
}

func TestNormalizeDocument_Totality(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"empty object", map[string]any{}},
		{"string", "not a budget"},
		{"number", 42.0},
		{"list instead of object", []any{1, 2}},
		{"lists are objects", decodeJSON(t, `{"coordination": {"a": 1}, "logistics": "x"}`)},
		{"null elements", decodeJSON(t, `{"coordination": [null, {}, null], "professionals": [null]}`)},
		{"garbage numbers", decodeJSON(t, `{"parameters": {"tax": "abc", "profit": null, "lucro": true},
			"metadata": {"discountPercent": "ten"},
			"oneOffValues": [{"unitValue": "NaN", "people": {}, "days": []}]}`)},
		{"typed document", NewDocument()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NormalizeDocument(tt.raw)
			assertFinite(t, doc)
			if doc.Metadata.SchemaVersion != SchemaVersion {
				t.Errorf("SchemaVersion = %d, want %d", doc.Metadata.SchemaVersion, SchemaVersion)
			}
		})
	}
}

func TestNormalizeDocument_Defaults(t *testing.T) {
	got := NormalizeDocument(nil)
	if diff := cmp.Diff(NewDocument(), got); diff != "" {
		t.Errorf("NormalizeDocument(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDocument_PartialMetadataAndParameters(t *testing.T) {
	raw := decodeJSON(t, `{"metadata": {"name": "Monitoramento"}, "parameters": {"tax": 0.07}}`)
	doc := NormalizeDocument(raw)

	if doc.Metadata.Name != "Monitoramento" {
		t.Errorf("Name = %q", doc.Metadata.Name)
	}
	if doc.Metadata.Client != "" || doc.Metadata.Date != "" || doc.Metadata.DiscountPercent != 0 {
		t.Errorf("unexpected metadata defaults: %+v", doc.Metadata)
	}
	want := Parameters{Tax: 0.07}
	if doc.Parameters != want {
		t.Errorf("Parameters = %+v, want %+v", doc.Parameters, want)
	}
}

func TestNormalizeDocument_LegacyFieldNames(t *testing.T) {
	raw := decodeJSON(t, `{
		"metadata": {"nome": "Licenciamento", "cliente": "ACME", "data": "2024-05-02", "descontoPercentual": 5},
		"parametros": {"imposto": 0.07, "lucro": 0.05, "fundoGiro": 0.05, "encargosPessoal": 0.1,
			"despesasFiscais": 0.03, "comissaoCaptacao": 0.03},
		"coordenacao": [{"cargo": "Coordenador", "profissional": "Sênior", "subtotal": 5000, "quant": 1, "dias": 30}],
		"profissionais": [{"id": 7, "cargo": "Biólogo", "prolabore": "10000", "pessoas": 2, "dias": 15}],
		"valoresUnicos": [{"item": "Diária", "valor": 120, "pessoas": 3, "dias": 4}],
		"logistica": [{"item": "Caminhonete", "valor": 350, "unidade": "dia/veículo", "qtd": 2, "dias": 10}]
	}`)

	want := Document{
		Metadata: Metadata{Name: "Licenciamento", Client: "ACME", Date: "2024-05-02", DiscountPercent: 5, SchemaVersion: SchemaVersion},
		Parameters: Parameters{
			Tax: 0.07, Profit: 0.05, WorkingCapitalFund: 0.05,
			PayrollCharges: 0.1, FiscalExpenses: 0.03, AcquisitionCommission: 0.03,
		},
		Coordination:  []CoordinationItem{{ID: "coord-1", Role: "Coordenador", ProfessionalLevel: "Sênior", MonthlyRate: 5000, Quantity: 1, Days: 30}},
		Professionals: []ProfessionalItem{{ID: "7", Role: "Biólogo", MonthlyFee: 10000, People: 2, Days: 15}},
		OneOffValues:  []OneOffItem{{ID: "vu-1", Description: "Diária", UnitValue: 120, People: 3, Days: 4}},
		Logistics:     []LogisticsItem{{ID: "log-1", Description: "Caminhonete", UnitValue: 350, Unit: UnitDayVehicle, Quantity: 2, Days: 10}},
	}

	if diff := cmp.Diff(want, NormalizeDocument(raw)); diff != "" {
		t.Errorf("legacy normalization mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDocument_CanonicalKeyWins(t *testing.T) {
	raw := decodeJSON(t, `{"coordination": [{"monthlyRate": 100, "subtotal": 999, "valor": 5}]}`)
	doc := NormalizeDocument(raw)
	if got := doc.Coordination[0].MonthlyRate; got != 100 {
		t.Errorf("MonthlyRate = %v, want 100", got)
	}

	raw = decodeJSON(t, `{"coordination": [{"monthlyRate": null, "valor": 5}]}`)
	doc = NormalizeDocument(raw)
	if got := doc.Coordination[0].MonthlyRate; got != 5 {
		t.Errorf("null canonical key: MonthlyRate = %v, want 5", got)
	}
}

func TestNormalizeLogistics_Unit(t *testing.T) {
	items := NormalizeLogistics(decodeJSON(t, `[{}, {"unit": "balsa"}, {"unidade": "km"}]`))
	want := []string{UnitPiece, "balsa", UnitKilometer}
	for i, it := range items {
		if it.Unit != want[i] {
			t.Errorf("item %d: Unit = %q, want %q", i, it.Unit, want[i])
		}
	}
}

func TestNormalizeList_IDs(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		expect []string
	}{
		{"generated from index", `[{}, {}, {}]`, []string{"coord-1", "coord-2", "coord-3"}},
		{"explicit kept", `[{"id": "a"}, {}, {"id": "b"}]`, []string{"a", "coord-2", "b"}},
		{"nulls skipped before indexing", `[null, {}, null, {}]`, []string{"coord-1", "coord-2"}},
		{"falsy scalars skipped", `[false, 0, "", {}, {}]`, []string{"coord-1", "coord-2"}},
		{"truthy scalars kept as empty items", `[true, 1]`, []string{"coord-1", "coord-2"}},
		{"generated avoids explicit", `[{}, {"id": "coord-1"}]`, []string{"coord-2", "coord-1"}},
		{"duplicate explicit reassigned", `[{"id": "x"}, {"id": "x"}]`, []string{"x", "coord-2"}},
		{"numeric id stringified", `[{"id": 3}]`, []string{"3"}},
		{"empty id treated as missing", `[{"id": ""}]`, []string{"coord-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := NormalizeCoordination(decodeJSON(t, tt.raw))
			var got []string
			for _, it := range items {
				got = append(got, it.ID)
			}
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumberCoercion(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 3, 3},
		{"numeric string", "42.25", 42.25},
		{"empty string", "", 0},
		{"garbage string", "abc", 0},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"json number", json.Number("7"), 7},
		{"map", map[string]any{}, 0},
		{"negative", -10.0, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := number(tt.input); got != tt.expect {
				t.Errorf("number(%v) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestRawSchemaVersion(t *testing.T) {
	if got := RawSchemaVersion(decodeJSON(t, `{"metadata": {"nome": "x"}}`)); got != 0 {
		t.Errorf("legacy version = %d, want 0", got)
	}
	if got := RawSchemaVersion(NormalizeDocument(nil)); got != SchemaVersion {
		t.Errorf("normalized version = %d, want %d", got, SchemaVersion)
	}
}

func TestNormalizeDocument_Idempotent(t *testing.T) {
	raw := decodeJSON(t, `{"coordenacao": [{"cargo": "A", "valor": "10", "qtd": 1, "dias": 3}],
		"logistica": [null, {"item": "B"}]}`)
	once := NormalizeDocument(raw)
	twice := NormalizeDocument(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("normalization not idempotent (-once +twice):\n%s", diff)
	}
}
