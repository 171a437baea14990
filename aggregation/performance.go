package aggregation

import (
	"fmt"

	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

// PercentageNA is reported when an institution has no plan to measure
// against, so a zero plan never produces a divide-by-zero percentage.
const PercentageNA = "N/A"

// PerformanceRow is one institution's CBHI plan-vs-achieved line
type PerformanceRow struct {
	Institution           string `json:"institution"`
	PlanHigherPaid        int64  `json:"planHigherPaid"`
	AchievedHigherPaid    int64  `json:"achievedHigherPaid"`
	PlanMediumPaid        int64  `json:"planMediumPaid"`
	AchievedMediumPaid    int64  `json:"achievedMediumPaid"`
	PlanFree              int64  `json:"planFree"`
	AchievedFree          int64  `json:"achievedFree"`
	PlanNewMembership     int64  `json:"planNewMembership"`
	AchievedNewMembership int64  `json:"achievedNewMembership"`
	PlanTotal             int64  `json:"planTotal"`
	AchievedTotal         int64  `json:"achievedTotal"`
	// Percentage is AchievedTotal/PlanTotal x 100 to one decimal place, or
	// the N/A sentinel when PlanTotal is zero
	Percentage string `json:"percentage"`
}

// Performance computes the CBHI plan-vs-achieved table: one row per
// institution in the plans table, achieved values summed per institution
// from the four CBHI sub-indicators across all given records.
func Performance(records []models.Record, plans map[string]models.InstitutionPlan) []PerformanceRow {
	components := schema.CBHIComponents()

	byInstitution := make(map[string]map[string]int64)
	for _, r := range records {
		sums, ok := byInstitution[r.Institution]
		if !ok {
			sums = make(map[string]int64, len(components))
			byInstitution[r.Institution] = sums
		}
		for _, col := range components {
			sums[col] += CoerceNumeric(r.Metrics[col])
		}
	}

	var rows []PerformanceRow
	for _, inst := range schema.Institutions() {
		plan, ok := plans[inst]
		if !ok {
			plan = models.InstitutionPlan{Institution: inst}
		}
		achieved := byInstitution[inst]

		row := PerformanceRow{
			Institution:           inst,
			PlanHigherPaid:        plan.HigherPaid,
			AchievedHigherPaid:    achieved[components[0]],
			PlanMediumPaid:        plan.MediumPaid,
			AchievedMediumPaid:    achieved[components[1]],
			PlanFree:              plan.Free,
			AchievedFree:          achieved[components[2]],
			PlanNewMembership:     plan.NewMembership,
			AchievedNewMembership: achieved[components[3]],
		}
		row.PlanTotal = plan.HigherPaid + plan.MediumPaid + plan.Free + plan.NewMembership
		row.AchievedTotal = row.AchievedHigherPaid + row.AchievedMediumPaid + row.AchievedFree + row.AchievedNewMembership
		row.Percentage = FormatPercentage(row.AchievedTotal, row.PlanTotal)

		rows = append(rows, row)
	}
	return rows
}

// FormatPercentage renders achieved/plan x 100 to one decimal place,
// returning the N/A sentinel for a zero plan
func FormatPercentage(achieved, plan int64) string {
	if plan == 0 {
		return PercentageNA
	}
	return fmt.Sprintf("%.1f", float64(achieved)/float64(plan)*100)
}
