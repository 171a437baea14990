package models

// InstitutionPlan holds the static CBHI membership targets for one health
// institution. Plans are compiled-in reference data, never derived from
// submitted records.
type InstitutionPlan struct {
	Institution   string `json:"institution"`
	HigherPaid    int64  `json:"higherPaid"`
	MediumPaid    int64  `json:"mediumPaid"`
	Free          int64  `json:"free"`
	NewMembership int64  `json:"newMembership"`
}
