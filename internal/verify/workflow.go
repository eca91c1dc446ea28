package verify

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Workflow drives verification transitions for links. Every operation checks
// that the link still exists before touching its record, so records never
// outlive or precede their link.
type Workflow struct {
	records *Store
	links   types.LinkStore
	now     func() time.Time
}

// NewWorkflow returns a workflow over records and links.
func NewWorkflow(records *Store, links types.LinkStore) *Workflow {
	return &Workflow{records: records, links: links, now: time.Now}
}

// AddEvidence appends an observation to a link's record, advancing an
// unverified record to partially verified.
func (w *Workflow) AddEvidence(linkID, description, actor string) (types.VerificationRecord, error) {
	if _, err := w.links.Get(linkID); err != nil {
		return types.VerificationRecord{}, err
	}
	rec, err := w.records.Get(linkID)
	if err != nil {
		return types.VerificationRecord{}, err
	}
	if err := rec.AddEvidence(description, actor, w.now().UTC()); err != nil {
		return types.VerificationRecord{}, err
	}
	if err := w.records.Put(rec); err != nil {
		return types.VerificationRecord{}, err
	}
	return rec, nil
}

// Confirm advances a partially verified record to fully verified and stamps
// the link's verified fields in the link store. Confirming without evidence
// is a conflict.
func (w *Workflow) Confirm(linkID, actor string) (types.VerificationRecord, error) {
	if _, err := w.links.Get(linkID); err != nil {
		return types.VerificationRecord{}, err
	}
	rec, err := w.records.Get(linkID)
	if err != nil {
		return types.VerificationRecord{}, err
	}
	at := w.now().UTC()
	if err := rec.Confirm(actor, at); err != nil {
		return types.VerificationRecord{}, err
	}

	// Stamp the link under the store's write lock so the link document and
	// the verification document agree about the confirmed state.
	err = w.links.Update(func(links []types.Link) ([]types.Link, error) {
		for i := range links {
			if links[i].LinkID == linkID {
				links[i].Verified = true
				t := at
				links[i].VerifiedAt = &t
				by := actor
				links[i].VerifiedBy = &by
				return links, nil
			}
		}
		return nil, fmt.Errorf("link %s: %w", linkID, types.ErrNotFound)
	})
	if err != nil {
		return types.VerificationRecord{}, err
	}

	if err := w.records.Put(rec); err != nil {
		return types.VerificationRecord{}, err
	}
	return rec, nil
}

// Status returns the record for a link, unverified when the workflow has
// never touched it.
func (w *Workflow) Status(linkID string) (types.VerificationRecord, error) {
	if _, err := w.links.Get(linkID); err != nil {
		return types.VerificationRecord{}, err
	}
	return w.records.Get(linkID)
}

// Drop removes the record for a deleted link.
func (w *Workflow) Drop(linkID string) error {
	return w.records.Delete(linkID)
}
