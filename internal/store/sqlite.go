// Package store persists finished import graphs into SQLite for ad-hoc queries.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"importgraph/internal/graph"
	"importgraph/util"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	key  TEXT PRIMARY KEY,
	path TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS edges (
	source TEXT NOT NULL REFERENCES nodes(key),
	target TEXT NOT NULL REFERENCES nodes(key),
	PRIMARY KEY (source, target)
);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
`

// Store is a SQLite database holding one exported graph.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGraph replaces the stored graph with g in a single transaction.
func (s *Store) SaveGraph(ctx context.Context, g *graph.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM edges"); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM nodes"); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, "INSERT INTO nodes (key, path) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer nodeStmt.Close()
	for _, p := range g.Paths() {
		if _, err := nodeStmt.ExecContext(ctx, util.NodeKey(p), p); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", p, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, "INSERT INTO edges (source, target) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, e := range g.Edges() {
		if _, err := edgeStmt.ExecContext(ctx, util.NodeKey(e.Source), util.NodeKey(e.Target)); err != nil {
			return fmt.Errorf("failed to insert edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit graph: %w", err)
	}
	return nil
}

// LoadGraph reads the stored graph back. Nodes come back sorted by path.
func (s *Store) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	b := graph.NewBuilder()

	rows, err := s.db.QueryContext(ctx, "SELECT path FROM nodes ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, err
		}
		b.AddNode(path)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT s.path, t.path FROM edges e
		JOIN nodes s ON s.key = e.source
		JOIN nodes t ON t.key = e.target
		ORDER BY s.path, t.path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var source, target string
		if err := rows.Scan(&source, &target); err != nil {
			return nil, err
		}
		b.AddEdge(source, target)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return b.Graph(), nil
}

// Importers returns the paths of files that import path.
func (s *Store) Importers(ctx context.Context, path string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.path FROM edges e
		JOIN nodes s ON s.key = e.source
		WHERE e.target = ?
		ORDER BY s.path`, util.NodeKey(path))
	if err != nil {
		return nil, fmt.Errorf("failed to query importers: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
