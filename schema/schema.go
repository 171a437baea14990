// Package schema is the static registry of reporting indicators. The
// flattened indicator order defined here is load-bearing: it fixes the form
// field order, the persisted metric key set and the export column order.
package schema

// Unit tags what an indicator measures. Currency indicators are reported
// separately and never summed alongside counts.
type Unit string

const (
	// UnitCount is a plain non-negative tally
	UnitCount Unit = "count"
	// UnitCurrency is an amount of money (ETB)
	UnitCurrency Unit = "currency"
)

// Indicator is a single named metric collected on the daily form
type Indicator struct {
	Name string `json:"name"`
	Unit Unit   `json:"unit"`
	// Derived indicators are computed at submission time, never entered
	Derived bool `json:"derived,omitempty"`
}

// Category groups indicators for form and display organization
type Category struct {
	Name       string      `json:"name"`
	Indicators []Indicator `json:"indicators"`
}

// TotalCBHI is the derived insurance indicator, computed as the sum of the
// four CBHI membership sub-indicators
const TotalCBHI = "Total CBHI (Auto)"

var cbhiComponents = [4]string{
	"CBHI membership renewal (higher paid)",
	"CBHI membership renewal (medium paid)",
	"CBHI membership renewal (free)",
	"CBHI new membership",
}

var categories = []Category{
	{
		Name: "Family Planning",
		Indicators: []Indicator{
			{Name: "All forms of Family planning accepted", Unit: UnitCount},
			{Name: "Long term Family planning accepted", Unit: UnitCount},
			{Name: "IUCD provided", Unit: UnitCount},
			{Name: "Immediate Postpartum Family Planning Service Provided", Unit: UnitCount},
		},
	},
	{
		Name: "Maternal Health",
		Indicators: []Indicator{
			{Name: "Pregnant women Screened", Unit: UnitCount},
			{Name: "ANC 1st contact service given", Unit: UnitCount},
			{Name: "ANC 4th contact service given", Unit: UnitCount},
			{Name: "ANC 8th contact service given", Unit: UnitCount},
			{Name: "Pregnant Mothers send to Health Center for skilled Birth", Unit: UnitCount},
			{Name: "Home Delivery happened", Unit: UnitCount},
			{Name: "Skilled Birth Attended", Unit: UnitCount},
			{Name: "Postnatal Care Service Provided", Unit: UnitCount},
			{Name: "Maternal conference conducted (1=Yes/0=No)", Unit: UnitCount},
			{Name: "number of Maternal conference participants", Unit: UnitCount},
		},
	},
	{
		Name: "Disease Prevention",
		Indicators: []Indicator{
			{Name: "Household visited", Unit: UnitCount},
			{Name: "Improved Latrine at visited household", Unit: UnitCount},
			{Name: "Unimproved Latrine at visited household", Unit: UnitCount},
			{Name: "presumptive TB case screened", Unit: UnitCount},
			{Name: "presumptive TB cases sent to HC for investigation", Unit: UnitCount},
		},
	},
	{
		Name: "Child Health",
		Indicators: []Indicator{
			{Name: "<5 children Treated for Pneumonia", Unit: UnitCount},
			{Name: "<5 children Treated for Diarrhea", Unit: UnitCount},
			{Name: "<5 children screened for acute malnutritional", Unit: UnitCount},
			{Name: "6–59 month children supplemented with Vitamin A", Unit: UnitCount},
			{Name: "24-29 month children Dewormed", Unit: UnitCount},
		},
	},
	{
		Name: "CBHI",
		Indicators: []Indicator{
			{Name: "CBHI membership renewal (higher paid)", Unit: UnitCount},
			{Name: "CBHI membership renewal (medium paid)", Unit: UnitCount},
			{Name: "CBHI membership renewal (free)", Unit: UnitCount},
			{Name: "CBHI new membership", Unit: UnitCount},
			{Name: TotalCBHI, Unit: UnitCount, Derived: true},
			{Name: "CBHI money collected (ETB)", Unit: UnitCurrency},
			{Name: "CBHI money saved to bank (ETB)", Unit: UnitCurrency},
		},
	},
}

var institutions = []string{
	"Densa HC /Merged Health Post",
	"02 Densa Zuriya Health Post",
	"03 Derew Health Post",
	"04 Wejed Health Post",
	"06 Gert Health Post",
	"07 Lenguat Health Post",
	"08 Alegeta Health Post",
	"09 Sensa Health Post",
}

// Categories returns the ordered indicator groups
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Flattened returns every indicator name in category order then in-category
// order. The order is stable across calls.
func Flattened() []string {
	var out []string
	for _, c := range categories {
		for _, ind := range c.Indicators {
			out = append(out, ind.Name)
		}
	}
	return out
}

// CountColumns returns the flattened indicator names carrying the count unit.
// Currency indicators are excluded by tag so monetary amounts never land in
// the general summary.
func CountColumns() []string {
	return ColumnsByUnit(UnitCount)
}

// ColumnsByUnit returns flattened indicator names filtered to the given units
func ColumnsByUnit(units ...Unit) []string {
	want := make(map[Unit]bool, len(units))
	for _, u := range units {
		want[u] = true
	}
	var out []string
	for _, c := range categories {
		for _, ind := range c.Indicators {
			if want[ind.Unit] {
				out = append(out, ind.Name)
			}
		}
	}
	return out
}

// Lookup returns the indicator with the given name
func Lookup(name string) (Indicator, bool) {
	for _, c := range categories {
		for _, ind := range c.Indicators {
			if ind.Name == name {
				return ind, true
			}
		}
	}
	return Indicator{}, false
}

// Derived reports whether the named indicator is computed rather than entered
func Derived(name string) bool {
	ind, ok := Lookup(name)
	return ok && ind.Derived
}

// CBHIComponents returns the four sub-indicators that sum into TotalCBHI
func CBHIComponents() [4]string {
	return cbhiComponents
}

// Institutions returns the fixed set of reporting health institutions
func Institutions() []string {
	out := make([]string, len(institutions))
	copy(out, institutions)
	return out
}

// ValidInstitution reports whether name is a member of the fixed set
func ValidInstitution(name string) bool {
	for _, inst := range institutions {
		if inst == name {
			return true
		}
	}
	return false
}
