package schema

import "github.com/densahealth/phcu-report-api/models"

// Annual CBHI membership targets per institution, from the woreda plan.
var plans = map[string]models.InstitutionPlan{
	"Densa HC /Merged Health Post": {Institution: "Densa HC /Merged Health Post", HigherPaid: 612, MediumPaid: 845, Free: 203, NewMembership: 158},
	"02 Densa Zuriya Health Post":  {Institution: "02 Densa Zuriya Health Post", HigherPaid: 384, MediumPaid: 710, Free: 162, NewMembership: 121},
	"03 Derew Health Post":         {Institution: "03 Derew Health Post", HigherPaid: 456, MediumPaid: 768, Free: 185, NewMembership: 134},
	"04 Wejed Health Post":         {Institution: "04 Wejed Health Post", HigherPaid: 329, MediumPaid: 655, Free: 147, NewMembership: 112},
	"06 Gert Health Post":          {Institution: "06 Gert Health Post", HigherPaid: 298, MediumPaid: 601, Free: 139, NewMembership: 104},
	"07 Lenguat Health Post":       {Institution: "07 Lenguat Health Post", HigherPaid: 341, MediumPaid: 628, Free: 151, NewMembership: 109},
	"08 Alegeta Health Post":       {Institution: "08 Alegeta Health Post", HigherPaid: 375, MediumPaid: 694, Free: 166, NewMembership: 118},
	"09 Sensa Health Post":         {Institution: "09 Sensa Health Post", HigherPaid: 402, MediumPaid: 731, Free: 172, NewMembership: 127},
}

// PlanFor returns the compiled-in CBHI plan for an institution
func PlanFor(institution string) (models.InstitutionPlan, bool) {
	p, ok := plans[institution]
	return p, ok
}

// Plans returns the full plan table keyed by institution
func Plans() map[string]models.InstitutionPlan {
	out := make(map[string]models.InstitutionPlan, len(plans))
	for k, v := range plans {
		out[k] = v
	}
	return out
}
