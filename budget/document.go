// Package budget holds the quotation data model and the pure functions that
// keep it consistent: normalization of persisted documents, the edit reducer
// and the totals calculator. Nothing in this package performs I/O.
package budget

// SchemaVersion identifies the canonical document shape produced by
// NormalizeDocument. Documents persisted with a lower version (or none) still
// carry the older Portuguese field names.
const SchemaVersion = 2

// FormulaVersion names the totals algorithm implemented by ComputeTotals.
// It is stamped on every saved document.
const FormulaVersion = "independent-v1"

// Category identifies one of the four line-item lists of a document.
type Category string

const (
	CategoryCoordination  Category = "coordination"
	CategoryProfessionals Category = "professionals"
	CategoryOneOffValues  Category = "oneOffValues"
	CategoryLogistics     Category = "logistics"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCoordination,
	CategoryProfessionals,
	CategoryOneOffValues,
	CategoryLogistics,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCoordination, CategoryProfessionals, CategoryOneOffValues, CategoryLogistics:
		return true
	}
	return false
}

// idPrefix is the prefix used for generated item ids.
func (c Category) idPrefix() string {
	switch c {
	case CategoryCoordination:
		return "coord"
	case CategoryProfessionals:
		return "prof"
	case CategoryOneOffValues:
		return "vu"
	case CategoryLogistics:
		return "log"
	}
	return "item"
}

// Metadata identifies a budget. DiscountPercent is a whole-number
// percentage (0-100), not a fraction.
type Metadata struct {
	Name            string  `json:"name"`
	Client          string  `json:"client"`
	Date            string  `json:"date"`
	DiscountPercent float64 `json:"discountPercent"`
	SchemaVersion   int     `json:"schemaVersion"`
}

// Parameters are percentage surcharges stored as fractions (0.07 = 7%).
type Parameters struct {
	Tax                   float64 `json:"tax"`
	Profit                float64 `json:"profit"`
	WorkingCapitalFund    float64 `json:"workingCapitalFund"`
	PayrollCharges        float64 `json:"payrollCharges"`
	FiscalExpenses        float64 `json:"fiscalExpenses"`
	AcquisitionCommission float64 `json:"acquisitionCommission"`
}

// CoordinationItem is a coordination role billed by month.
type CoordinationItem struct {
	ID                string  `json:"id"`
	Role              string  `json:"role"`
	ProfessionalLevel string  `json:"professionalLevel"`
	MonthlyRate       float64 `json:"monthlyRate"`
	Quantity          float64 `json:"quantity"`
	Days              float64 `json:"days"`
}

// Subtotal prorates the monthly rate over a 30-day month.
func (i CoordinationItem) Subtotal() float64 {
	return (i.Days / 30) * i.MonthlyRate * i.Quantity
}

// ProfessionalItem is a technical professional billed by monthly fee.
type ProfessionalItem struct {
	ID         string  `json:"id"`
	Role       string  `json:"role"`
	MonthlyFee float64 `json:"monthlyFee"`
	People     float64 `json:"people"`
	Days       float64 `json:"days"`
}

func (i ProfessionalItem) Subtotal() float64 {
	return (i.Days / 30) * i.MonthlyFee * i.People
}

// OneOffItem is a per-person, per-day value such as a field allowance.
type OneOffItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	UnitValue   float64 `json:"unitValue"`
	People      float64 `json:"people"`
	Days        float64 `json:"days"`
}

func (i OneOffItem) Subtotal() float64 {
	return i.UnitValue * i.People * i.Days
}

// LogisticsItem is a transport or lodging cost. Unit is a display label only.
type LogisticsItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	UnitValue   float64 `json:"unitValue"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Days        float64 `json:"days"`
}

func (i LogisticsItem) Subtotal() float64 {
	return i.UnitValue * i.Quantity * i.Days
}

// Logistics unit labels offered by the editor.
const (
	UnitDayPerson     = "dia/pessoa"
	UnitDayVehicle    = "dia/veículo"
	UnitPerson        = "pessoa"
	UnitVehicle       = "veículo"
	UnitDay           = "dia"
	UnitMonthVehicle  = "mês/veículo"
	UnitLot           = "lote"
	UnitPiece         = "unidade"
	UnitKilometer     = "km"
	defaultLogistUnit = UnitPiece
)

// LogisticsUnits lists the known unit labels.
var LogisticsUnits = []string{
	UnitDayPerson, UnitDayVehicle, UnitPerson, UnitVehicle, UnitDay,
	UnitMonthVehicle, UnitLot, UnitPiece, UnitKilometer,
}

// Document is the aggregate budget edited by one session and persisted
// wholesale.
type Document struct {
	Metadata      Metadata           `json:"metadata"`
	Parameters    Parameters         `json:"parameters"`
	Coordination  []CoordinationItem `json:"coordination"`
	Professionals []ProfessionalItem `json:"professionals"`
	OneOffValues  []OneOffItem       `json:"oneOffValues"`
	Logistics     []LogisticsItem    `json:"logistics"`
}

// NewDocument returns the default document used for a new budget.
func NewDocument() Document {
	return Document{
		Metadata:      Metadata{SchemaVersion: SchemaVersion},
		Coordination:  []CoordinationItem{},
		Professionals: []ProfessionalItem{},
		OneOffValues:  []OneOffItem{},
		Logistics:     []LogisticsItem{},
	}
}

// Clone returns a copy of d that shares no slices with it.
func (d Document) Clone() Document {
	out := d
	out.Coordination = append([]CoordinationItem{}, d.Coordination...)
	out.Professionals = append([]ProfessionalItem{}, d.Professionals...)
	out.OneOffValues = append([]OneOffItem{}, d.OneOffValues...)
	out.Logistics = append([]LogisticsItem{}, d.Logistics...)
	return out
}

// ItemIDs returns the ids of the items in category c, in display order.
func (d Document) ItemIDs(c Category) []string {
	var ids []string
	switch c {
	case CategoryCoordination:
		for _, it := range d.Coordination {
			ids = append(ids, it.ID)
		}
	case CategoryProfessionals:
		for _, it := range d.Professionals {
			ids = append(ids, it.ID)
		}
	case CategoryOneOffValues:
		for _, it := range d.OneOffValues {
			ids = append(ids, it.ID)
		}
	case CategoryLogistics:
		for _, it := range d.Logistics {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
