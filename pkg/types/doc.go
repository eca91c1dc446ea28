// Package types defines the trace link entity, the LinkStore, EntityIndex
// and AuditSink ports, report types, and standard error categories for the
// Loom traceability system.
// Implements: prd001-trace-link-core (Link, link types, ports, error taxonomy);
//
//	docs/ARCHITECTURE § Main Interface, § System Components (Engine API).
package types
