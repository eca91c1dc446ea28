// Package audit appends mutation records to a JSONL trail for the
// compliance history. The sink is fire-and-forget: a failing append is
// logged and swallowed so the graph operation it observes still succeeds.
// Implements: prd011-audit-trail; docs/ARCHITECTURE § Audit.
package audit

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Audit actions recorded by the engine.
const (
	ActionCreate   = "link.create"
	ActionDelete   = "link.delete"
	ActionVerify   = "link.verify"
	ActionEvidence = "link.evidence"
	ActionImport   = "bulk.import"
	ActionExport   = "bulk.export"
)

// JSONLSink appends one JSON object per line to the audit file. The file is
// opened per record so long-lived processes never hold it; every write is a
// single O_APPEND syscall.
type JSONLSink struct {
	path string
	log  *slog.Logger
}

// compile-time interface check
var _ types.AuditSink = (*JSONLSink)(nil)

// NewJSONLSink returns a sink appending to path.
func NewJSONLSink(path string, log *slog.Logger) *JSONLSink {
	if log == nil {
		log = slog.Default()
	}
	return &JSONLSink{path: path, log: log}
}

// Record implements types.AuditSink.
func (s *JSONLSink) Record(rec types.AuditRecord) {
	line, err := json.Marshal(rec)
	if err != nil {
		s.log.Warn("audit record not serializable", "action", rec.Action, "error", err)
		return
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		s.log.Warn("audit trail unavailable", "path", s.path, "error", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		s.log.Warn("audit append failed", "path", s.path, "error", err)
	}
}
