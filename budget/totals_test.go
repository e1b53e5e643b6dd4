package budget

import (
	"math"
	"testing"
)

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// scenarioDocument is a coordinator for a month plus a biologist for half a
// month, with 33% of surcharges and a 10% discount.
func scenarioDocument() Document {
	return NormalizeDocument(map[string]any{
		"metadata": map[string]any{"discountPercent": 10},
		"parameters": map[string]any{
			"tax": 0.07, "profit": 0.05, "workingCapitalFund": 0.05,
			"payrollCharges": 0.10, "fiscalExpenses": 0.03, "acquisitionCommission": 0.03,
		},
		"coordination":  []any{map[string]any{"monthlyRate": 5000, "quantity": 1, "days": 30}},
		"professionals": []any{map[string]any{"monthlyFee": 10000, "people": 1, "days": 15}},
	})
}

func TestComputeTotals_Scenario(t *testing.T) {
	got := ComputeTotals(scenarioDocument())

	checks := []struct {
		name   string
		got    float64
		expect float64
	}{
		{"CoordinationSubtotal", got.CoordinationSubtotal, 5000},
		{"ProfessionalsSubtotal", got.ProfessionalsSubtotal, 5000},
		{"OneOffValuesSubtotal", got.OneOffValuesSubtotal, 0},
		{"LogisticsSubtotal", got.LogisticsSubtotal, 0},
		{"Fees", got.Fees, 10000},
		{"OperationalCosts", got.OperationalCosts, 0},
		{"DirectSubtotal", got.DirectSubtotal, 10000},
		{"Indirect.Tax", got.Indirect.Tax, 700},
		{"Indirect.Profit", got.Indirect.Profit, 500},
		{"Indirect.WorkingCapitalFund", got.Indirect.WorkingCapitalFund, 500},
		{"Indirect.PayrollCharges", got.Indirect.PayrollCharges, 1000},
		{"Indirect.FiscalExpenses", got.Indirect.FiscalExpenses, 300},
		{"Indirect.AcquisitionCommission", got.Indirect.AcquisitionCommission, 300},
		{"IndirectSubtotal", got.IndirectSubtotal, 3300},
		{"TaxableBase", got.TaxableBase, 13300},
		{"TaxAmount", got.TaxAmount, 931},
		{"AmountBeforeDiscount", got.AmountBeforeDiscount, 14231},
		{"DiscountAmount", got.DiscountAmount, 1423.10},
		{"FinalTotal", got.FinalTotal, 12807.90},
	}
	for _, c := range checks {
		if !floatClose(c.got, c.expect) {
			t.Errorf("%s = %f, want %f", c.name, c.got, c.expect)
		}
	}
}

func TestComputeTotals_EmptyDocument(t *testing.T) {
	got := ComputeTotals(NewDocument())
	if got != (Totals{}) {
		t.Errorf("empty document totals = %+v, want all zero", got)
	}
}

func TestComputeTotals_Deterministic(t *testing.T) {
	doc := sampleDocument()
	if a, b := ComputeTotals(doc), ComputeTotals(doc); a != b {
		t.Errorf("ComputeTotals not deterministic: %+v vs %+v", a, b)
	}
}

func TestComputeTotals_Additivity(t *testing.T) {
	docs := []Document{NewDocument(), sampleDocument(), scenarioDocument(), NormalizeDocument(map[string]any{
		"oneOffValues": []any{map[string]any{"unitValue": 0.1, "people": 3, "days": 7}},
		"logistics":    []any{map[string]any{"unitValue": 33.33, "quantity": 3, "days": 0.5}},
	})}

	for i, doc := range docs {
		var c, p, o, l float64
		for _, it := range doc.Coordination {
			c += it.Subtotal()
		}
		for _, it := range doc.Professionals {
			p += it.Subtotal()
		}
		for _, it := range doc.OneOffValues {
			o += it.Subtotal()
		}
		for _, it := range doc.Logistics {
			l += it.Subtotal()
		}

		got := ComputeTotals(doc)
		if got.DirectSubtotal != c+p+o+l {
			t.Errorf("doc %d: DirectSubtotal = %v, want %v", i, got.DirectSubtotal, c+p+o+l)
		}
		for cat, want := range map[Category]float64{
			CategoryCoordination:  c,
			CategoryProfessionals: p,
			CategoryOneOffValues:  o,
			CategoryLogistics:     l,
		} {
			if got.CategorySubtotal(cat) != want {
				t.Errorf("doc %d: %s subtotal = %v, want %v", i, cat, got.CategorySubtotal(cat), want)
			}
		}
		if !floatClose(got.Fees+got.OperationalCosts, got.DirectSubtotal) {
			t.Errorf("doc %d: fees + operational = %v, want %v", i, got.Fees+got.OperationalCosts, got.DirectSubtotal)
		}
	}
}

func TestComputeTotals_DiscountBoundaries(t *testing.T) {
	doc := scenarioDocument()

	doc.Metadata.DiscountPercent = 0
	got := ComputeTotals(doc)
	if got.FinalTotal != got.AmountBeforeDiscount {
		t.Errorf("0%% discount: FinalTotal = %v, want %v", got.FinalTotal, got.AmountBeforeDiscount)
	}

	doc.Metadata.DiscountPercent = 100
	got = ComputeTotals(doc)
	if got.FinalTotal != 0 {
		t.Errorf("100%% discount: FinalTotal = %v, want 0", got.FinalTotal)
	}
}

func TestComputeTotals_CategoryFormulas(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		cat    Category
		expect float64
	}{
		{
			"coordination prorates by 30 days",
			NormalizeDocument(map[string]any{"coordination": []any{map[string]any{"monthlyRate": 9000, "quantity": 2, "days": 10}}}),
			CategoryCoordination, 6000,
		},
		{
			"professionals prorate by 30 days",
			NormalizeDocument(map[string]any{"professionals": []any{map[string]any{"monthlyFee": 6000, "people": 3, "days": 45}}}),
			CategoryProfessionals, 27000,
		},
		{
			"one-off values multiply",
			NormalizeDocument(map[string]any{"oneOffValues": []any{map[string]any{"unitValue": 80, "people": 4, "days": 5}}}),
			CategoryOneOffValues, 1600,
		},
		{
			"logistics multiply, unit ignored",
			NormalizeDocument(map[string]any{"logistics": []any{map[string]any{"unitValue": 2.5, "unit": UnitKilometer, "quantity": 400, "days": 2}}}),
			CategoryLogistics, 2000,
		},
		{
			"missing counts default to zero",
			NormalizeDocument(map[string]any{"logistics": []any{map[string]any{"unitValue": 100}}}),
			CategoryLogistics, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.doc).CategorySubtotal(tt.cat)
			if !floatClose(got, tt.expect) {
				t.Errorf("subtotal = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestComputeTotals_NegativeValuesPropagate(t *testing.T) {
	doc := NormalizeDocument(map[string]any{
		"oneOffValues": []any{
			map[string]any{"unitValue": 100, "people": 1, "days": 1},
			map[string]any{"unitValue": -40, "people": 1, "days": 1},
		},
	})
	got := ComputeTotals(doc)
	if !floatClose(got.FinalTotal, 60) {
		t.Errorf("FinalTotal = %v, want 60", got.FinalTotal)
	}
}
