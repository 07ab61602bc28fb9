package models

import "time"

// ReportSnapshot is one scheduled capture of a report action, stored in MongoDB.
type ReportSnapshot struct {
	Kind       string    `bson:"kind" json:"kind"`
	Action     string    `bson:"action" json:"action"`
	Records    []Record  `bson:"records" json:"records"`
	Count      int       `bson:"count" json:"count"`
	CapturedAt time.Time `bson:"captured_at" json:"captured_at"`
}

// AuditEntry is the payload of a log_activity call.
type AuditEntry struct {
	CorrelationID string         `json:"correlation_id"`
	Action        string         `json:"activity"`
	Entity        string         `json:"entity"`
	EntityID      string         `json:"entity_id,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}
