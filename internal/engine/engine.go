// Package engine is the façade over the trace link graph: validated link
// CRUD, traversal, orphan detection, matrix generation, bulk import/export,
// and the verification workflow, each as one load-mutate-save cycle against
// the link store.
// Implements: prd001-trace-link-core; docs/ARCHITECTURE § Engine.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/loom/internal/audit"
	"github.com/mesh-intelligence/loom/internal/bridge"
	"github.com/mesh-intelligence/loom/internal/graph"
	"github.com/mesh-intelligence/loom/internal/matrix"
	"github.com/mesh-intelligence/loom/internal/registry"
	"github.com/mesh-intelligence/loom/internal/verify"
	"github.com/mesh-intelligence/loom/pkg/types"
)

// Config wires the engine's collaborators. Store and Index are mandatory;
// Verification is required only for the verification operations; Audit and
// Log default to a no-op sink and slog.Default.
type Config struct {
	Store        types.LinkStore
	Index        types.EntityIndex
	Verification *verify.Store
	Audit        types.AuditSink
	Log          *slog.Logger
}

// Engine coordinates every graph operation. Mutations run validate ->
// mutate -> save under the store's write lock, then emit an audit record;
// reads consult the store and registry directly.
type Engine struct {
	store        types.LinkStore
	resolver     *registry.Resolver
	verification *verify.Store
	validator    *graph.Validator
	traverser    *graph.Traverser
	orphans      *graph.OrphanDetector
	coverage     *graph.CoverageAnalyzer
	impact       *graph.ImpactAnalyzer
	generator    *matrix.Generator
	verifier     *verify.Workflow
	audit        types.AuditSink
	log          *slog.Logger
	now          func() time.Time
}

// New builds an engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("engine needs a link store: %w", types.ErrValidation)
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("engine needs an entity index: %w", types.ErrValidation)
	}
	if cfg.Audit == nil {
		cfg.Audit = types.NopAuditSink{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	resolver := registry.NewResolver(cfg.Index)
	e := &Engine{
		store:     cfg.Store,
		resolver:  resolver,
		validator: graph.NewValidator(resolver.Index()),
		traverser: graph.NewTraverser(),
		orphans:   graph.NewOrphanDetector(resolver.Index()),
		coverage:  graph.NewCoverageAnalyzer(resolver.Index()),
		impact:    graph.NewImpactAnalyzer(),
		generator: matrix.NewGenerator(resolver.Index()),
		audit:     cfg.Audit,
		log:       cfg.Log,
		now:       time.Now,
	}
	if cfg.Verification != nil {
		e.verification = cfg.Verification
		e.verifier = verify.NewWorkflow(cfg.Verification, cfg.Store)
	}
	return e, nil
}

// Init materializes the persisted documents: an existing collection is
// re-saved unchanged, a missing one becomes the empty versioned form. A
// corrupt document fails here rather than being silently reset.
func (e *Engine) Init() error {
	links, err := e.store.Load()
	if err != nil {
		return err
	}
	if err := e.store.Save(links); err != nil {
		return err
	}
	if e.verification != nil {
		records, err := e.verification.Load()
		if err != nil {
			return err
		}
		if err := e.verification.Save(records); err != nil {
			return err
		}
	}
	return nil
}

// newLinkID returns a time-ordered UUID, falling back to random when the
// monotonic source fails.
func newLinkID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// CreateLink admits one link through the validated path. The validator runs
// against a snapshot taken under the store's write lock, so no competing
// writer can slip a duplicate or a cycle in between check and append.
func (e *Engine) CreateLink(sourceID, targetID string, linkType types.LinkType, createdBy string) (types.Link, error) {
	srcKind, err := e.resolver.Kind(sourceID)
	if err != nil {
		return types.Link{}, err
	}
	dstKind, err := e.resolver.Kind(targetID)
	if err != nil {
		return types.Link{}, err
	}

	link := types.Link{
		LinkID:     newLinkID(),
		SourceType: srcKind,
		SourceID:   sourceID,
		TargetType: dstKind,
		TargetID:   targetID,
		LinkType:   linkType,
		CreatedAt:  e.now().UTC(),
		CreatedBy:  createdBy,
	}

	err = e.store.Update(func(existing []types.Link) ([]types.Link, error) {
		if err := e.validator.ValidateCreate(existing, link); err != nil {
			return nil, err
		}
		return append(existing, link), nil
	})
	if err != nil {
		return types.Link{}, err
	}

	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionCreate,
		LinkID:    link.LinkID,
		Actor:     createdBy,
		Detail:    fmt.Sprintf("%s -> %s (%s)", sourceID, targetID, linkType),
	})
	e.log.Info("link created", "link_id", link.LinkID, "source", sourceID, "target", targetID, "type", linkType)
	return link, nil
}

// DeleteLink removes one link by ID and drops its verification record.
func (e *Engine) DeleteLink(linkID, actor string) error {
	link, err := e.store.Get(linkID)
	if err != nil {
		return err
	}
	if err := e.store.Delete(linkID); err != nil {
		return err
	}
	if e.verifier != nil {
		if err := e.verifier.Drop(linkID); err != nil {
			e.log.Warn("verification record not dropped", "link_id", linkID, "error", err)
		}
	}
	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionDelete,
		LinkID:    linkID,
		Actor:     actor,
		Detail:    fmt.Sprintf("%s -> %s (%s)", link.SourceID, link.TargetID, link.LinkType),
	})
	e.log.Info("link deleted", "link_id", linkID)
	return nil
}

// GetLink returns one link by ID.
func (e *Engine) GetLink(linkID string) (types.Link, error) {
	return e.store.Get(linkID)
}

// LinksFor returns every link touching entityID.
func (e *Engine) LinksFor(entityID string) ([]types.Link, error) {
	if _, err := e.resolver.Kind(entityID); err != nil {
		return nil, err
	}
	return e.store.GetForEntity(entityID)
}

// List returns the full link collection in document order.
func (e *Engine) List() ([]types.Link, error) {
	return e.store.Load()
}

// TraceForward builds the tree of everything reachable from entityID along
// outgoing links.
func (e *Engine) TraceForward(entityID string) (types.TracePath, error) {
	return e.trace(entityID, types.TraceForward)
}

// TraceBackward builds the tree of everything that reaches entityID along
// incoming links.
func (e *Engine) TraceBackward(entityID string) (types.TracePath, error) {
	return e.trace(entityID, types.TraceBackward)
}

func (e *Engine) trace(entityID string, direction types.TraceDirection) (types.TracePath, error) {
	if _, err := e.resolver.Resolve(entityID); err != nil {
		return types.TracePath{}, fmt.Errorf("trace root: %w", err)
	}
	links, err := e.store.Load()
	if err != nil {
		return types.TracePath{}, err
	}
	if direction == types.TraceBackward {
		return e.traverser.TraceBackward(links, entityID), nil
	}
	return e.traverser.TraceForward(links, entityID), nil
}

// FindOrphans reports every registered entity with no incident link, grouped
// by kind.
func (e *Engine) FindOrphans() ([]types.OrphanedItem, error) {
	links, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	return e.orphans.Detect(links)
}

// BuildMatrix projects the graph into the summary matrix: one entry per
// entity with at least one link, each listing its distinct counterparts.
func (e *Engine) BuildMatrix() (types.TraceMatrix, error) {
	links, err := e.store.Load()
	if err != nil {
		return types.TraceMatrix{}, err
	}

	counterparts := make(map[string]map[string]bool)
	for _, l := range links {
		addCounterpart(counterparts, l.SourceID, l.TargetID)
		addCounterpart(counterparts, l.TargetID, l.SourceID)
	}

	entities := make(map[string]types.TraceEntity, len(counterparts))
	for id, linked := range counterparts {
		entry := types.TraceEntity{
			EntityID:       id,
			LinkedEntities: sortedKeys(linked),
		}
		if kind, err := e.resolver.Kind(id); err == nil {
			entry.EntityType = kind
		}
		if info, err := e.resolver.Resolve(id); err == nil {
			entry.Title = info.Title
			entry.Status = info.Status
		}
		entities[id] = entry
	}

	return types.TraceMatrix{
		Entities:    entities,
		Links:       links,
		GeneratedAt: e.now().UTC(),
	}, nil
}

func addCounterpart(m map[string]map[string]bool, id, other string) {
	if m[id] == nil {
		m[id] = make(map[string]bool)
	}
	m[id][other] = true
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RTM generates the full requirements traceability matrix under cfg's
// filters and sort key.
func (e *Engine) RTM(cfg matrix.Config) (matrix.Matrix, error) {
	links, err := e.store.Load()
	if err != nil {
		return matrix.Matrix{}, err
	}
	return e.generator.Build(links, cfg)
}

// RTMStats generates the matrix and aggregates it.
func (e *Engine) RTMStats(cfg matrix.Config) (matrix.Stats, error) {
	m, err := e.RTM(cfg)
	if err != nil {
		return matrix.Stats{}, err
	}
	return matrix.ComputeStats(m), nil
}

// Coverage measures requirement-to-test linkage across the registry.
func (e *Engine) Coverage() (types.CoverageReport, error) {
	links, err := e.store.Load()
	if err != nil {
		return types.CoverageReport{}, err
	}
	return e.coverage.Analyze(links)
}

// Impact reports everything a change to entityID would touch.
func (e *Engine) Impact(entityID string) (types.ImpactReport, error) {
	if _, err := e.resolver.Resolve(entityID); err != nil {
		return types.ImpactReport{}, err
	}
	links, err := e.store.Load()
	if err != nil {
		return types.ImpactReport{}, err
	}
	return e.impact.Analyze(links, entityID), nil
}

// ImportCSV bulk-imports links from the fixed-header CSV on r. Row failures
// are collected into the returned stats, not raised.
func (e *Engine) ImportCSV(r io.Reader, actor string) (types.ImportStats, error) {
	stats, err := bridge.NewImporter(e, e.log).ImportCSV(r)
	if err != nil {
		return stats, err
	}
	e.auditImport("csv", actor, stats)
	return stats, nil
}

// ImportJSON bulk-imports links from a JSON record array on r.
func (e *Engine) ImportJSON(r io.Reader, actor string) (types.ImportStats, error) {
	stats, err := bridge.NewImporter(e, e.log).ImportJSON(r)
	if err != nil {
		return stats, err
	}
	e.auditImport("json", actor, stats)
	return stats, nil
}

func (e *Engine) auditImport(format, actor string, stats types.ImportStats) {
	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionImport,
		Actor:     actor,
		Detail: fmt.Sprintf("%s: %d processed, %d imported, %d failed, %d duplicates",
			format, stats.TotalProcessed, stats.SuccessfulImports, stats.FailedImports, stats.DuplicatesFound),
	})
}

// ExportCSV renders the summary matrix as CSV.
func (e *Engine) ExportCSV(actor string) ([]byte, error) {
	m, err := e.BuildMatrix()
	if err != nil {
		return nil, err
	}
	data, err := bridge.ExportSummaryCSV(m)
	if err != nil {
		return nil, err
	}
	e.auditExport("csv", actor, len(m.Links))
	return data, nil
}

// ExportJSON renders the summary matrix with its raw links as JSON.
func (e *Engine) ExportJSON(actor string) ([]byte, error) {
	m, err := e.BuildMatrix()
	if err != nil {
		return nil, err
	}
	data, err := bridge.ExportSummaryJSON(m)
	if err != nil {
		return nil, err
	}
	e.auditExport("json", actor, len(m.Links))
	return data, nil
}

// ExportDOT renders the link graph in Graphviz DOT form.
func (e *Engine) ExportDOT(actor string) ([]byte, error) {
	links, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	e.auditExport("dot", actor, len(links))
	return bridge.ExportDOT(links), nil
}

func (e *Engine) auditExport(format, actor string, linkCount int) {
	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionExport,
		Actor:     actor,
		Detail:    fmt.Sprintf("%s: %d links", format, linkCount),
	})
}

// AddEvidence records a verification observation against a link.
func (e *Engine) AddEvidence(linkID, description, actor string) (types.VerificationRecord, error) {
	if e.verifier == nil {
		return types.VerificationRecord{}, fmt.Errorf("verification store not configured: %w", types.ErrValidation)
	}
	rec, err := e.verifier.AddEvidence(linkID, description, actor)
	if err != nil {
		return types.VerificationRecord{}, err
	}
	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionEvidence,
		LinkID:    linkID,
		Actor:     actor,
		Detail:    description,
	})
	return rec, nil
}

// ConfirmVerification promotes a link with evidence to fully verified and
// stamps the link's verified fields.
func (e *Engine) ConfirmVerification(linkID, actor string) (types.VerificationRecord, error) {
	if e.verifier == nil {
		return types.VerificationRecord{}, fmt.Errorf("verification store not configured: %w", types.ErrValidation)
	}
	rec, err := e.verifier.Confirm(linkID, actor)
	if err != nil {
		return types.VerificationRecord{}, err
	}
	e.audit.Record(types.AuditRecord{
		Timestamp: e.now().UTC(),
		Action:    audit.ActionVerify,
		LinkID:    linkID,
		Actor:     actor,
	})
	return rec, nil
}

// VerificationStatus returns a link's verification record, unverified when
// the workflow has never touched the link.
func (e *Engine) VerificationStatus(linkID string) (types.VerificationRecord, error) {
	if e.verifier == nil {
		return types.VerificationRecord{}, fmt.Errorf("verification store not configured: %w", types.ErrValidation)
	}
	return e.verifier.Status(linkID)
}
