package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// Schema creates the results tables read by SQLiteReader.
const Schema = `
CREATE TABLE IF NOT EXISTS results (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user       TEXT,
	test       TEXT,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS result_scores (
	result_id  INTEGER NOT NULL REFERENCES results(id) ON DELETE CASCADE,
	level      TEXT NOT NULL,
	name       TEXT NOT NULL,
	axis_id    TEXT,
	average    REAL,
	percentage REAL,
	value      REAL,
	category   TEXT
);
CREATE INDEX IF NOT EXISTS idx_result_scores_result ON result_scores(result_id);
CREATE TABLE IF NOT EXISTS axes (
	level TEXT NOT NULL,
	id    TEXT NOT NULL,
	name  TEXT NOT NULL,
	ord   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (level, id)
);
`

// SQLiteWriter appends results to a results database.
type SQLiteWriter struct {
	db *sql.DB
}

// OpenSQLiteWriter opens (creating if needed) a results database and ensures
// the schema exists.
func OpenSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Close closes the database connection
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// SaveResult stores a profile as a new result and returns its id. Axis lists
// carried by the profile replace the stored ones for their level.
func (w *SQLiteWriter) SaveResult(p render.Profile, createdAt time.Time) (int64, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`INSERT INTO results (user, test, created_at) VALUES (?, ?, ?)`,
		p.Subject, p.Test, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO result_scores (result_id, level, name, axis_id, average, percentage, value, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare scores: %w", err)
	}
	defer stmt.Close()

	for _, lvl := range []struct {
		level  model.Level
		scores model.ScoreMap
	}{{model.LevelCluster, p.Clusters}, {model.LevelConstruct, p.Constructs}} {
		for _, name := range lvl.scores.Names() {
			raw := lvl.scores[name]
			if _, err := stmt.Exec(id, string(lvl.level), name, nullString(raw.AxisID),
				raw.Average, raw.Percentage, raw.Value, nullString(raw.Category)); err != nil {
				return 0, fmt.Errorf("insert score %q: %w", name, err)
			}
		}
	}

	if err := saveAxes(tx, model.LevelCluster, p.ClusterAxes); err != nil {
		return 0, err
	}
	if err := saveAxes(tx, model.LevelConstruct, p.ConstructAxes); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func saveAxes(tx *sql.Tx, level model.Level, axes []model.AxisConfig) error {
	if len(axes) == 0 {
		return nil
	}
	if _, err := tx.Exec(`DELETE FROM axes WHERE level = ?`, string(level)); err != nil {
		return fmt.Errorf("clear %s axes: %w", level, err)
	}
	for _, a := range axes {
		if _, err := tx.Exec(`INSERT INTO axes (level, id, name, ord) VALUES (?, ?, ?, ?)`,
			string(level), a.ID, a.Name, a.Order); err != nil {
			return fmt.Errorf("insert axis %q: %w", a.ID, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
