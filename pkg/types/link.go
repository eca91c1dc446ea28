package types

import (
	"fmt"
	"strings"
	"time"
)

// LinkType classifies the semantic relationship a trace link asserts.
// Implements: prd001-trace-link-core R2.
type LinkType string

// Link types. Canonical values use PascalCase and appear verbatim in the
// link document wire format.
const (
	LinkDerivedFrom LinkType = "DerivedFrom"
	LinkImplements  LinkType = "Implements"
	LinkVerifies    LinkType = "Verifies"
	LinkDependsOn   LinkType = "DependsOn"
	LinkConflicts   LinkType = "Conflicts"
	LinkDuplicates  LinkType = "Duplicates"
	LinkRelated     LinkType = "Related"
)

// LinkTypes lists every link type in canonical order.
func LinkTypes() []LinkType {
	return []LinkType{
		LinkDerivedFrom,
		LinkImplements,
		LinkVerifies,
		LinkDependsOn,
		LinkConflicts,
		LinkDuplicates,
		LinkRelated,
	}
}

// ParseLinkType converts a string to a LinkType. Parsing is case-insensitive
// and tolerant of snake_case and kebab-case spellings; the returned value is
// always canonical PascalCase.
func ParseLinkType(s string) (LinkType, error) {
	folded := strings.ToLower(strings.TrimSpace(s))
	folded = strings.ReplaceAll(folded, "_", "")
	folded = strings.ReplaceAll(folded, "-", "")
	switch folded {
	case "derivedfrom":
		return LinkDerivedFrom, nil
	case "implements":
		return LinkImplements, nil
	case "verifies":
		return LinkVerifies, nil
	case "dependson":
		return LinkDependsOn, nil
	case "conflicts":
		return LinkConflicts, nil
	case "duplicates":
		return LinkDuplicates, nil
	case "related":
		return LinkRelated, nil
	}
	return "", fmt.Errorf("unknown link type %q: %w", s, ErrValidation)
}

// Valid reports whether the link type is one of the seven known values.
func (t LinkType) Valid() bool {
	switch t {
	case LinkDerivedFrom, LinkImplements, LinkVerifies, LinkDependsOn,
		LinkConflicts, LinkDuplicates, LinkRelated:
		return true
	}
	return false
}

// DependencyEdge reports whether the link type participates in cycle
// detection. Only structural dependencies can form an illegal cycle;
// associative types like Related never do.
func (t LinkType) DependencyEdge() bool {
	return t == LinkDependsOn || t == LinkDerivedFrom
}

// Link is one directed traceability assertion between two entities.
// Implements: prd001-trace-link-core R1; docs/ARCHITECTURE § Data Design
// (link document).
type Link struct {
	LinkID     string     `json:"id"`
	SourceType EntityKind `json:"source_type"`
	SourceID   string     `json:"source_id"`
	TargetType EntityKind `json:"target_type"`
	TargetID   string     `json:"target_id"`
	LinkType   LinkType   `json:"link_type"`
	CreatedAt  time.Time  `json:"created_at"`
	CreatedBy  string     `json:"created_by"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at"`
	VerifiedBy *string    `json:"verified_by"`
}

// Touches reports whether the link has id as source or target.
func (l Link) Touches(id string) bool {
	return l.SourceID == id || l.TargetID == id
}

// Other returns the endpoint opposite id. Returns the empty string when the
// link does not touch id.
func (l Link) Other(id string) string {
	switch id {
	case l.SourceID:
		return l.TargetID
	case l.TargetID:
		return l.SourceID
	}
	return ""
}

// SameEndpoints reports whether both links connect the same ordered
// source/target pair.
func (l Link) SameEndpoints(o Link) bool {
	return l.SourceID == o.SourceID && l.TargetID == o.TargetID
}

// Validate checks structural well-formedness: non-empty IDs with recognized
// prefixes, declared kinds matching the prefixes, and a known link type.
// Graph-level rules (existence, cycles, duplicates) live in the validator.
func (l Link) Validate() error {
	if l.SourceID == "" {
		return fmt.Errorf("source id is empty: %w", ErrValidation)
	}
	if l.TargetID == "" {
		return fmt.Errorf("target id is empty: %w", ErrValidation)
	}
	srcKind, err := KindForID(l.SourceID)
	if err != nil {
		return err
	}
	dstKind, err := KindForID(l.TargetID)
	if err != nil {
		return err
	}
	if l.SourceType != srcKind {
		return fmt.Errorf("source type %q does not match id %q: %w", l.SourceType, l.SourceID, ErrValidation)
	}
	if l.TargetType != dstKind {
		return fmt.Errorf("target type %q does not match id %q: %w", l.TargetType, l.TargetID, ErrValidation)
	}
	if !l.LinkType.Valid() {
		return fmt.Errorf("unknown link type %q: %w", l.LinkType, ErrValidation)
	}
	return nil
}
