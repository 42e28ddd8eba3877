package datasource

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// ErrNoResults is returned when the database holds no result rows.
var ErrNoResults = errors.New("no results in database")

// SQLiteReader provides read access to a results database
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// ResultSummary is one stored result without its scores.
type ResultSummary struct {
	ID        int64
	User      string
	Test      string
	CreatedAt time.Time
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{
		db:   db,
		path: source.Path,
	}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CountResults returns the number of stored results
func (r *SQLiteReader) CountResults() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// LatestResultID returns the most recently created result.
func (r *SQLiteReader) LatestResultID() (int64, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM results ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoResults
	}
	if err != nil {
		return 0, fmt.Errorf("latest result: %w", err)
	}
	return id, nil
}

// ListResults returns every result, newest first.
func (r *SQLiteReader) ListResults() ([]ResultSummary, error) {
	rows, err := r.db.Query(`SELECT id, user, test, created_at FROM results ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []ResultSummary
	for rows.Next() {
		var s ResultSummary
		var user, test sql.NullString
		var created sql.NullTime
		if err := rows.Scan(&s.ID, &user, &test, &created); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		s.User, s.Test = user.String, test.String
		if created.Valid {
			s.CreatedAt = created.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadResult reads one result with its scores and the stored axis lists.
func (r *SQLiteReader) LoadResult(id int64) (render.Profile, error) {
	var p render.Profile
	var user, test sql.NullString
	err := r.db.QueryRow(`SELECT user, test FROM results WHERE id = ?`, id).Scan(&user, &test)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("result %d: %w", id, ErrNoResults)
	}
	if err != nil {
		return p, fmt.Errorf("load result %d: %w", id, err)
	}
	p.Subject, p.Test = user.String, test.String

	rows, err := r.db.Query(`
		SELECT level, name, axis_id, average, percentage, value, category
		FROM result_scores
		WHERE result_id = ?
		ORDER BY rowid`, id)
	if err != nil {
		return p, fmt.Errorf("load scores for %d: %w", id, err)
	}
	defer rows.Close()

	p.Clusters = model.ScoreMap{}
	p.Constructs = model.ScoreMap{}
	for rows.Next() {
		var level, name string
		var axisID, category sql.NullString
		var avg, pct, val sql.NullFloat64
		if err := rows.Scan(&level, &name, &axisID, &avg, &pct, &val, &category); err != nil {
			return p, fmt.Errorf("scan score: %w", err)
		}
		raw := model.RawScore{
			AxisID:     axisID.String,
			Category:   category.String,
			Average:    nullFloat(avg),
			Percentage: nullFloat(pct),
			Value:      nullFloat(val),
		}
		switch model.Level(level) {
		case model.LevelCluster:
			p.Clusters[name] = raw
		case model.LevelConstruct:
			p.Constructs[name] = raw
		}
	}
	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("error iterating scores: %w", err)
	}

	if p.ClusterAxes, err = r.LoadAxes(model.LevelCluster); err != nil {
		return p, err
	}
	if p.ConstructAxes, err = r.LoadAxes(model.LevelConstruct); err != nil {
		return p, err
	}
	return p, nil
}

// LoadAxes returns the stored axis list for level, or nil when the database
// has none (callers then use the default taxonomy).
func (r *SQLiteReader) LoadAxes(level model.Level) ([]model.AxisConfig, error) {
	rows, err := r.db.Query(`SELECT id, name, ord FROM axes WHERE level = ? ORDER BY ord, id`, string(level))
	if err != nil {
		return nil, fmt.Errorf("load %s axes: %w", level, err)
	}
	defer rows.Close()

	var axes []model.AxisConfig
	for rows.Next() {
		var a model.AxisConfig
		if err := rows.Scan(&a.ID, &a.Name, &a.Order); err != nil {
			return nil, fmt.Errorf("scan axis: %w", err)
		}
		axes = append(axes, a)
	}
	return axes, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.Float(v.Float64)
}
