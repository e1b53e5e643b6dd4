package budget

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Issue is a user-facing validation warning. Row is 1-based for line items
// and 0 for metadata and parameters.
type Issue struct {
	Section string `json:"section"`
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	SectionMetadata   = "metadata"
	SectionParameters = "parameters"
)

var sectionOrder = map[string]int{
	SectionMetadata:               0,
	SectionParameters:             1,
	string(CategoryCoordination):  2,
	string(CategoryProfessionals): 3,
	string(CategoryOneOffValues):  4,
	string(CategoryLogistics):     5,
}

var (
	notBlank    = validation.By(checkNotBlank)
	nonNegative = validation.Min(0.0).Error("must not be negative")
	fraction    = []validation.Rule{
		validation.Min(0.0).Error("must be between 0 and 100%"),
		validation.Max(1.0).Error("must be between 0 and 100%"),
	}
	percent = []validation.Rule{
		validation.Min(0.0).Error("must be between 0 and 100"),
		validation.Max(100.0).Error("must be between 0 and 100"),
	}
)

func checkNotBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("is required")
	}
	return nil
}

// Validate classifies problems in doc without changing it. An empty result
// means the budget is ready to send; a non-empty one never prevents
// ComputeTotals or saving.
func Validate(doc Document) []Issue {
	var issues []Issue

	m := doc.Metadata
	issues = collect(issues, SectionMetadata, 0, validation.ValidateStruct(&m,
		validation.Field(&m.Name, notBlank),
		validation.Field(&m.Client, notBlank),
		validation.Field(&m.Date, notBlank, validation.Date("2006-01-02").Error("must be a date (YYYY-MM-DD)")),
		validation.Field(&m.DiscountPercent, percent...),
	))

	p := doc.Parameters
	issues = collect(issues, SectionParameters, 0, validation.ValidateStruct(&p,
		validation.Field(&p.Tax, fraction...),
		validation.Field(&p.Profit, fraction...),
		validation.Field(&p.WorkingCapitalFund, fraction...),
		validation.Field(&p.PayrollCharges, fraction...),
		validation.Field(&p.FiscalExpenses, fraction...),
		validation.Field(&p.AcquisitionCommission, fraction...),
	))

	for i, it := range doc.Coordination {
		issues = collect(issues, string(CategoryCoordination), i+1, validation.ValidateStruct(&it,
			validation.Field(&it.Role, notBlank),
			validation.Field(&it.MonthlyRate, nonNegative),
			validation.Field(&it.Quantity, nonNegative),
			validation.Field(&it.Days, nonNegative),
		))
	}
	for i, it := range doc.Professionals {
		issues = collect(issues, string(CategoryProfessionals), i+1, validation.ValidateStruct(&it,
			validation.Field(&it.Role, notBlank),
			validation.Field(&it.MonthlyFee, nonNegative),
			validation.Field(&it.People, nonNegative),
			validation.Field(&it.Days, nonNegative),
		))
	}
	for i, it := range doc.OneOffValues {
		issues = collect(issues, string(CategoryOneOffValues), i+1, validation.ValidateStruct(&it,
			validation.Field(&it.Description, notBlank),
			validation.Field(&it.UnitValue, nonNegative),
			validation.Field(&it.People, nonNegative),
			validation.Field(&it.Days, nonNegative),
		))
	}
	for i, it := range doc.Logistics {
		issues = collect(issues, string(CategoryLogistics), i+1, validation.ValidateStruct(&it,
			validation.Field(&it.Description, notBlank),
			validation.Field(&it.UnitValue, nonNegative),
			validation.Field(&it.Quantity, nonNegative),
			validation.Field(&it.Days, nonNegative),
		))
	}

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Section != b.Section {
			return sectionOrder[a.Section] < sectionOrder[b.Section]
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Field < b.Field
	})
	return issues
}

func collect(issues []Issue, section string, row int, err error) []Issue {
	if err == nil {
		return issues
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return append(issues, Issue{Section: section, Row: row, Message: err.Error()})
	}
	for field, fe := range errs {
		issues = append(issues, Issue{Section: section, Row: row, Field: field, Message: fe.Error()})
	}
	return issues
}
