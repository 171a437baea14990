package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

type schemaResponse struct {
	Categories []schema.Category `json:"categories"`
	Derived    []string          `json:"derived"`
}

type institutionsResponse struct {
	Institutions []string                          `json:"institutions"`
	Plans        map[string]models.InstitutionPlan `json:"plans"`
}

// SchemaHandler returns the indicator registry so form clients never
// hardcode the field list
func SchemaHandler(w http.ResponseWriter, r *http.Request) {
	derived := []string{}
	for _, name := range schema.Flattened() {
		if schema.Derived(name) {
			derived = append(derived, name)
		}
	}
	b, err := json.Marshal(schemaResponse{
		Categories: schema.Categories(),
		Derived:    derived,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// InstitutionsHandler returns the reporting institutions and their CBHI plans
func InstitutionsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(institutionsResponse{
		Institutions: schema.Institutions(),
		Plans:        schema.Plans(),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
