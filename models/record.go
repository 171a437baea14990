package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Record holds one submitted daily activity report as stored in the reports
// collection. The bson field order below is the persisted document layout the
// aggregation and export code depend on: _id, reportDate, reporterName,
// reporterPhone, institution, submittedAt, metrics.
//
// Records are append-only. There is no update or delete path anywhere in the
// API, so a stored record is immutable.
type Record struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	ReportDate    string                 `bson:"reportDate" json:"reportDate"`
	ReporterName  string                 `bson:"reporterName" json:"reporterName"`
	ReporterPhone string                 `bson:"reporterPhone" json:"reporterPhone"`
	Institution   string                 `bson:"institution" json:"institution"`
	SubmittedAt   primitive.DateTime     `bson:"submittedAt" json:"submittedAt"`
	Metrics       map[string]interface{} `bson:"metrics" json:"metrics"`
}
