package types

import (
	"fmt"
	"time"
)

// VerificationState is the lifecycle stage of a link's independent
// verification. Transitions are monotonic; a record never moves backward.
// Implements: prd008-verification R1.
type VerificationState string

// Verification states in lifecycle order.
const (
	VerificationNone    VerificationState = "unverified"
	VerificationPartial VerificationState = "partially_verified"
	VerificationFull    VerificationState = "fully_verified"
)

// Evidence is one recorded observation supporting a link's verification.
type Evidence struct {
	Description string    `json:"description"`
	RecordedBy  string    `json:"recorded_by"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// VerificationRecord tracks the verification lifecycle of one link.
// Implements: prd008-verification R2.
type VerificationRecord struct {
	LinkID      string            `json:"link_id"`
	State       VerificationState `json:"state"`
	Evidence    []Evidence        `json:"evidence"`
	ConfirmedBy string            `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
}

// NewVerificationRecord returns an unverified record for a link.
func NewVerificationRecord(linkID string) VerificationRecord {
	return VerificationRecord{
		LinkID: linkID,
		State:  VerificationNone,
	}
}

// AddEvidence appends an observation and advances an unverified record to
// partially verified. Evidence on a fully verified record is retained but
// never changes the state.
func (r *VerificationRecord) AddEvidence(description, recordedBy string, at time.Time) error {
	if description == "" {
		return fmt.Errorf("evidence description is empty: %w", ErrValidation)
	}
	r.Evidence = append(r.Evidence, Evidence{
		Description: description,
		RecordedBy:  recordedBy,
		RecordedAt:  at,
	})
	if r.State == VerificationNone {
		r.State = VerificationPartial
	}
	return nil
}

// Confirm advances a partially verified record to fully verified and stamps
// the confirmer. Confirming without evidence or confirming twice is a
// conflict.
func (r *VerificationRecord) Confirm(by string, at time.Time) error {
	switch r.State {
	case VerificationPartial:
		r.State = VerificationFull
		r.ConfirmedBy = by
		t := at
		r.ConfirmedAt = &t
		return nil
	case VerificationNone:
		return fmt.Errorf("link %s has no recorded evidence: %w", r.LinkID, ErrConflict)
	case VerificationFull:
		return fmt.Errorf("link %s is already fully verified: %w", r.LinkID, ErrConflict)
	}
	return fmt.Errorf("link %s has unknown verification state %q: %w", r.LinkID, r.State, ErrConflict)
}
