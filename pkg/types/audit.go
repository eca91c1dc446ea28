package types

import "time"

// AuditRecord is one entry in the mutation audit trail.
// Implements: prd011-audit-trail R1.
type AuditRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	LinkID    string    `json:"link_id,omitempty"`
	EntityID  string    `json:"entity_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// AuditSink receives audit records. Sinks are fire-and-forget: a failing
// sink must not block or fail the mutation it observes.
type AuditSink interface {
	Record(rec AuditRecord)
}

// NopAuditSink discards every record.
type NopAuditSink struct{}

// Record implements AuditSink.
func (NopAuditSink) Record(AuditRecord) {}
