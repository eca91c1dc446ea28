// Package registry maintains the entity index that trace links are validated
// against. The SQLite-backed index is the durable record of which artifacts
// exist and the descriptive fields matrix rows are enriched with.
// Implements: prd003-entity-registry; docs/ARCHITECTURE § System Components
// (entity registry).
package registry

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/loom/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteIndex implements types.EntityIndex on a single-file SQLite database.
type SQLiteIndex struct {
	db   *sql.DB
	path string
}

var _ types.EntityIndex = (*SQLiteIndex)(nil)

// Open opens (creating if needed) the registry database at path and ensures
// the schema exists.
func Open(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %v: %w", path, err, types.ErrIO)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing registry schema: %v: %w", err, types.ErrIO)
	}
	return &SQLiteIndex{db: db, path: path}, nil
}

// Close releases the database handle.
func (r *SQLiteIndex) Close() error {
	return r.db.Close()
}

// Put inserts or updates an entity record. The entity type is derived from
// the ID prefix when unset and must match it when set. The original
// created_at survives updates.
func (r *SQLiteIndex) Put(info types.EntityInfo) error {
	kind, err := types.KindForID(info.EntityID)
	if err != nil {
		return err
	}
	if info.EntityType == "" {
		info.EntityType = kind
	} else if info.EntityType != kind {
		return fmt.Errorf("entity type %q does not match id %q: %w", info.EntityType, info.EntityID, types.ErrValidation)
	}

	var exists bool
	err = r.db.QueryRow("SELECT 1 FROM entities WHERE entity_id = ?", info.EntityID).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("checking entity existence: %v: %w", err, types.ErrIO)
	}

	if exists {
		_, err = r.db.Exec(
			`UPDATE entities SET entity_type = ?, title = ?, status = ?, category = ?, priority = ?, description = ?
			 WHERE entity_id = ?`,
			string(info.EntityType), info.Title, info.Status, info.Category, info.Priority, info.Description,
			info.EntityID,
		)
	} else {
		_, err = r.db.Exec(
			`INSERT INTO entities (entity_id, entity_type, title, status, category, priority, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			info.EntityID, string(info.EntityType), info.Title, info.Status, info.Category, info.Priority,
			info.Description, time.Now().UTC().Format(time.RFC3339),
		)
	}
	if err != nil {
		return fmt.Errorf("persisting entity %s: %v: %w", info.EntityID, err, types.ErrIO)
	}
	return nil
}

// Lookup implements types.EntityIndex.
func (r *SQLiteIndex) Lookup(id string) (types.EntityInfo, error) {
	row := r.db.QueryRow(
		`SELECT entity_id, entity_type, title, status, category, priority, description
		 FROM entities WHERE entity_id = ?`, id,
	)
	info, err := scanEntity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.EntityInfo{}, fmt.Errorf("entity %s: %w", id, types.ErrNotFound)
		}
		return types.EntityInfo{}, fmt.Errorf("looking up entity %s: %v: %w", id, err, types.ErrIO)
	}
	return info, nil
}

// IDs implements types.EntityIndex.
func (r *SQLiteIndex) IDs() ([]string, error) {
	rows, err := r.db.Query("SELECT entity_id FROM entities ORDER BY entity_id")
	if err != nil {
		return nil, fmt.Errorf("listing entity ids: %v: %w", err, types.ErrIO)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning entity id: %v: %w", err, types.ErrIO)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity ids: %v: %w", err, types.ErrIO)
	}
	return ids, nil
}

// List returns all entities of the given kind ordered by ID. An empty kind
// returns every entity.
func (r *SQLiteIndex) List(kind types.EntityKind) ([]types.EntityInfo, error) {
	query := `SELECT entity_id, entity_type, title, status, category, priority, description
	          FROM entities ORDER BY entity_id`
	args := []any{}
	if kind != "" {
		query = `SELECT entity_id, entity_type, title, status, category, priority, description
		         FROM entities WHERE entity_type = ? ORDER BY entity_id`
		args = append(args, string(kind))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %v: %w", err, types.ErrIO)
	}
	defer rows.Close()

	var out []types.EntityInfo
	for rows.Next() {
		info, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %v: %w", err, types.ErrIO)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %v: %w", err, types.ErrIO)
	}
	return out, nil
}

// Remove deletes an entity record. Links referencing the entity are not
// touched; the caller decides whether dangling links are acceptable.
func (r *SQLiteIndex) Remove(id string) error {
	res, err := r.db.Exec("DELETE FROM entities WHERE entity_id = ?", id)
	if err != nil {
		return fmt.Errorf("removing entity %s: %v: %w", id, err, types.ErrIO)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing entity %s: %v: %w", id, err, types.ErrIO)
	}
	if n == 0 {
		return fmt.Errorf("entity %s: %w", id, types.ErrNotFound)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(s scanner) (types.EntityInfo, error) {
	var info types.EntityInfo
	var kind string
	err := s.Scan(&info.EntityID, &kind, &info.Title, &info.Status, &info.Category, &info.Priority, &info.Description)
	if err != nil {
		return types.EntityInfo{}, err
	}
	info.EntityType = types.EntityKind(kind)
	return info, nil
}
