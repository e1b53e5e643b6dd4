package budget

// IndirectCosts holds one surcharge per parameter, each computed against the
// direct subtotal alone.
type IndirectCosts struct {
	Tax                   float64 `json:"tax"`
	Profit                float64 `json:"profit"`
	WorkingCapitalFund    float64 `json:"workingCapitalFund"`
	PayrollCharges        float64 `json:"payrollCharges"`
	FiscalExpenses        float64 `json:"fiscalExpenses"`
	AcquisitionCommission float64 `json:"acquisitionCommission"`
}

// Sum adds the six components.
func (c IndirectCosts) Sum() float64 {
	return c.Tax + c.Profit + c.WorkingCapitalFund + c.PayrollCharges + c.FiscalExpenses + c.AcquisitionCommission
}

// Totals is the derived cost breakdown of a document. It is recomputed on
// every read and never stored as a source of truth.
type Totals struct {
	CoordinationSubtotal  float64 `json:"coordinationSubtotal"`
	ProfessionalsSubtotal float64 `json:"professionalsSubtotal"`
	OneOffValuesSubtotal  float64 `json:"oneOffValuesSubtotal"`
	LogisticsSubtotal     float64 `json:"logisticsSubtotal"`

	// OperationalCosts groups one-off values and logistics; Fees groups
	// coordination and professionals.
	OperationalCosts float64 `json:"operationalCosts"`
	Fees             float64 `json:"fees"`

	DirectSubtotal       float64       `json:"directSubtotal"`
	Indirect             IndirectCosts `json:"indirect"`
	IndirectSubtotal     float64       `json:"indirectSubtotal"`
	TaxableBase          float64       `json:"taxableBase"`
	TaxAmount            float64       `json:"taxAmount"`
	AmountBeforeDiscount float64       `json:"amountBeforeDiscount"`
	DiscountAmount       float64       `json:"discountAmount"`
	FinalTotal           float64       `json:"finalTotal"`
}

// CategorySubtotal returns the subtotal of category c.
func (t Totals) CategorySubtotal(c Category) float64 {
	switch c {
	case CategoryCoordination:
		return t.CoordinationSubtotal
	case CategoryProfessionals:
		return t.ProfessionalsSubtotal
	case CategoryOneOffValues:
		return t.OneOffValuesSubtotal
	case CategoryLogistics:
		return t.LogisticsSubtotal
	}
	return 0
}

// ComputeTotals derives the full breakdown of doc:
//
//	direct      = sum of category subtotals
//	indirect    = direct * each parameter, summed
//	taxable     = direct + indirect
//	tax         = taxable * parameters.tax
//	before disc = taxable + tax
//	final       = before disc - before disc * discountPercent/100
//
// Negative inputs propagate linearly; nothing is clamped.
func ComputeTotals(doc Document) Totals {
	var t Totals
	for _, it := range doc.Coordination {
		t.CoordinationSubtotal += it.Subtotal()
	}
	for _, it := range doc.Professionals {
		t.ProfessionalsSubtotal += it.Subtotal()
	}
	for _, it := range doc.OneOffValues {
		t.OneOffValuesSubtotal += it.Subtotal()
	}
	for _, it := range doc.Logistics {
		t.LogisticsSubtotal += it.Subtotal()
	}

	t.Fees = t.CoordinationSubtotal + t.ProfessionalsSubtotal
	t.OperationalCosts = t.OneOffValuesSubtotal + t.LogisticsSubtotal
	t.DirectSubtotal = t.CoordinationSubtotal + t.ProfessionalsSubtotal + t.OneOffValuesSubtotal + t.LogisticsSubtotal

	p := doc.Parameters
	t.Indirect = IndirectCosts{
		Tax:                   t.DirectSubtotal * p.Tax,
		Profit:                t.DirectSubtotal * p.Profit,
		WorkingCapitalFund:    t.DirectSubtotal * p.WorkingCapitalFund,
		PayrollCharges:        t.DirectSubtotal * p.PayrollCharges,
		FiscalExpenses:        t.DirectSubtotal * p.FiscalExpenses,
		AcquisitionCommission: t.DirectSubtotal * p.AcquisitionCommission,
	}
	t.IndirectSubtotal = t.Indirect.Sum()

	t.TaxableBase = t.DirectSubtotal + t.IndirectSubtotal
	t.TaxAmount = t.TaxableBase * p.Tax
	t.AmountBeforeDiscount = t.TaxableBase + t.TaxAmount
	t.DiscountAmount = t.AmountBeforeDiscount * (doc.Metadata.DiscountPercent / 100)
	t.FinalTotal = t.AmountBeforeDiscount - t.DiscountAmount
	return t
}
