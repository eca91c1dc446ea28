// Package graph enforces link-graph invariants and answers traversal, orphan,
// coverage, and impact queries over the link collection.
// Implements: prd004-graph-invariants, prd005-traversal, prd012-impact-coverage;
//
//	docs/ARCHITECTURE § Graph Engine.
package graph

import (
	"fmt"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Validator admits links into the graph. Every rule runs against a snapshot
// of the existing collection; any failure leaves the store untouched because
// nothing is written until all rules pass.
type Validator struct {
	index types.EntityIndex
}

// NewValidator returns a validator resolving entities through index.
func NewValidator(index types.EntityIndex) *Validator {
	return &Validator{index: index}
}

// ValidateCreate checks candidate against existing links. Rules run in a
// fixed order and the first failure wins: structural shape, endpoint
// existence, self-reference, dependency cycle, contradictory relationship,
// duplicate tuple.
func (v *Validator) ValidateCreate(existing []types.Link, candidate types.Link) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	if err := v.entitiesExist(candidate); err != nil {
		return err
	}
	if candidate.SourceID == candidate.TargetID {
		return fmt.Errorf("link source and target are both %s: %w", candidate.SourceID, types.ErrValidation)
	}
	if err := checkCycle(existing, candidate); err != nil {
		return err
	}
	if err := checkContradiction(existing, candidate); err != nil {
		return err
	}
	return checkDuplicate(existing, candidate)
}

func (v *Validator) entitiesExist(candidate types.Link) error {
	if _, err := v.index.Lookup(candidate.SourceID); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := v.index.Lookup(candidate.TargetID); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return nil
}

// checkCycle rejects a dependency edge that would let a walk from the
// candidate target reach the candidate source. Only DependsOn and
// DerivedFrom edges span the searched graph; associative types cannot form
// an illegal cycle.
func checkCycle(existing []types.Link, candidate types.Link) error {
	if !candidate.LinkType.DependencyEdge() {
		return nil
	}

	adjacent := make(map[string][]string)
	for _, l := range existing {
		if l.LinkType.DependencyEdge() {
			adjacent[l.SourceID] = append(adjacent[l.SourceID], l.TargetID)
		}
	}

	// DFS from the candidate target hunting the candidate source. The
	// visited set bounds the walk to the existing entity population.
	stack := []string{candidate.TargetID}
	visited := make(map[string]bool)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == candidate.SourceID {
			return fmt.Errorf("link %s -> %s would close a dependency cycle: %w",
				candidate.SourceID, candidate.TargetID, types.ErrConflict)
		}
		if visited[node] {
			continue
		}
		visited[node] = true
		stack = append(stack, adjacent[node]...)
	}
	return nil
}

// checkContradiction rejects a Conflicts link between a pair that already
// shares a Verifies or Implements link in either orientation.
func checkContradiction(existing []types.Link, candidate types.Link) error {
	if candidate.LinkType != types.LinkConflicts {
		return nil
	}
	for _, l := range existing {
		if l.LinkType != types.LinkVerifies && l.LinkType != types.LinkImplements {
			continue
		}
		samePair := (l.SourceID == candidate.SourceID && l.TargetID == candidate.TargetID) ||
			(l.SourceID == candidate.TargetID && l.TargetID == candidate.SourceID)
		if samePair {
			return fmt.Errorf("%s link %s between %s and %s contradicts a Conflicts link: %w",
				l.LinkType, l.LinkID, candidate.SourceID, candidate.TargetID, types.ErrConflict)
		}
	}
	return nil
}

// checkDuplicate rejects an exact (source, target, type) tuple repeat.
func checkDuplicate(existing []types.Link, candidate types.Link) error {
	for _, l := range existing {
		if l.SameEndpoints(candidate) && l.LinkType == candidate.LinkType {
			return fmt.Errorf("link %s -> %s (%s) already exists: %w",
				candidate.SourceID, candidate.TargetID, candidate.LinkType, types.ErrConflict)
		}
	}
	return nil
}

// IsDuplicate reports whether candidate repeats an existing (source, target,
// type) tuple. The import bridge uses it to count duplicates separately from
// validation failures.
func IsDuplicate(existing []types.Link, candidate types.Link) bool {
	return checkDuplicate(existing, candidate) != nil
}
