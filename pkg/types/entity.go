package types

import (
	"fmt"
	"strings"
)

// EntityKind identifies which class of tracked artifact an ID refers to.
// Implements: prd003-entity-registry R1.
type EntityKind string

// Entity kinds. Canonical values use PascalCase and appear verbatim in the
// link document wire format.
const (
	KindRequirement EntityKind = "Requirement"
	KindTestCase    EntityKind = "TestCase"
	KindRisk        EntityKind = "Risk"
	KindDocument    EntityKind = "Document"
)

// ID prefixes. Every entity ID carries its kind in a fixed prefix.
const (
	PrefixRequirement = "REQ-"
	PrefixTestCase    = "TC-"
	PrefixRisk        = "RISK-"
	PrefixDocument    = "DOC-"
)

// kindPrefixes orders prefixes longest-first so RISK- never matches as a
// malformed REQ- sibling during scanning.
var kindPrefixes = []struct {
	prefix string
	kind   EntityKind
}{
	{PrefixRisk, KindRisk},
	{PrefixRequirement, KindRequirement},
	{PrefixDocument, KindDocument},
	{PrefixTestCase, KindTestCase},
}

// KindForID derives the entity kind from an ID prefix. Returns ErrValidation
// when the ID carries no recognized prefix.
func KindForID(id string) (EntityKind, error) {
	for _, kp := range kindPrefixes {
		if strings.HasPrefix(id, kp.prefix) && len(id) > len(kp.prefix) {
			return kp.kind, nil
		}
	}
	return "", fmt.Errorf("entity id %q has no recognized prefix: %w", id, ErrValidation)
}

// ParseEntityKind converts a string to an EntityKind, accepting any casing.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requirement":
		return KindRequirement, nil
	case "testcase", "test_case", "test-case":
		return KindTestCase, nil
	case "risk":
		return KindRisk, nil
	case "document":
		return KindDocument, nil
	}
	return "", fmt.Errorf("unknown entity kind %q: %w", s, ErrValidation)
}

// Prefix returns the ID prefix for the kind.
func (k EntityKind) Prefix() string {
	switch k {
	case KindRequirement:
		return PrefixRequirement
	case KindTestCase:
		return PrefixTestCase
	case KindRisk:
		return PrefixRisk
	case KindDocument:
		return PrefixDocument
	}
	return ""
}

// Valid reports whether the kind is one of the four known values.
func (k EntityKind) Valid() bool {
	switch k {
	case KindRequirement, KindTestCase, KindRisk, KindDocument:
		return true
	}
	return false
}

// EntityInfo is the registry's view of a tracked artifact. Only EntityID is
// mandatory; the descriptive fields feed matrix rows and reports.
// Implements: prd003-entity-registry R2.
type EntityInfo struct {
	EntityID    string     `json:"entity_id"`
	EntityType  EntityKind `json:"entity_type"`
	Title       string     `json:"title,omitempty"`
	Status      string     `json:"status,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Description string     `json:"description,omitempty"`
}

// EntityIndex resolves entity IDs to registry records. The link validator
// consults it before accepting a link; matrix generation enriches rows
// through it.
// Implements: prd003-entity-registry R3.
type EntityIndex interface {
	// Lookup returns the record for an entity ID. Returns an error wrapping
	// ErrNotFound when the ID is not registered.
	Lookup(id string) (EntityInfo, error)

	// IDs returns all registered entity IDs in unspecified order.
	IDs() ([]string, error)
}
