// Package datasource discovers, validates, and selects the freshest valid
// source of participant results: a SQLite results database or a JSON/YAML
// score file.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/compassviz/pkg/loader"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeSQLite is a SQLite results database
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSON is a JSON score file
	SourceTypeJSON SourceType = "json"
	// SourceTypeYAML is a YAML score file
	SourceTypeYAML SourceType = "yaml"
)

// Priority values for source types (higher = more authoritative)
const (
	PrioritySQLite = 100
	PriorityJSON   = 60
	PriorityYAML   = 50
)

// DataSource represents a potential source of score data
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the path to the source file
	Path string `json:"path"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// ResultCount is the number of stored results (set during validation)
	ResultCount int `json:"result_count"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, results=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.ResultCount, status)
}

// TypeFor classifies a path by extension. ok is false for unknown files.
func TypeFor(path string) (SourceType, int, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, PrioritySQLite, true
	case ".json":
		return SourceTypeJSON, PriorityJSON, true
	case ".yaml", ".yml":
		return SourceTypeYAML, PriorityYAML, true
	default:
		return "", 0, false
	}
}

// Detect describes the source at path. Directories are searched with
// DiscoverSources and the best valid source is returned.
func Detect(path string) (DataSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("cannot read source: %w", err)
	}
	if info.IsDir() {
		sources, err := DiscoverSources(DiscoveryOptions{Dir: path, ValidateAfterDiscovery: true})
		if err != nil {
			return DataSource{}, err
		}
		return SelectBestSource(sources)
	}
	typ, prio, ok := TypeFor(path)
	if !ok {
		return DataSource{}, fmt.Errorf("%s: %w", path, loader.ErrUnsupportedFormat)
	}
	return DataSource{
		Type:     typ,
		Path:     path,
		Priority: prio,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	}, nil
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// Dir is the directory to scan
	Dir string
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives discovery messages (optional)
	Logger func(msg string)
}

// DiscoverSources finds all potential data sources in a directory, newest
// first.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}
		typ, prio, ok := TypeFor(name)
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		src := DataSource{
			Type:     typ,
			Path:     filepath.Join(opts.Dir, name),
			Priority: prio,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		}
		opts.Logger(fmt.Sprintf("Found %s: %s (mod=%s)", typ, src.Path, src.ModTime.Format(time.RFC3339)))
		sources = append(sources, src)
	}

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			if err := ValidateSource(&sources[i]); err != nil {
				opts.Logger(fmt.Sprintf("Validation failed for %s: %v", sources[i].Path, err))
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sortSources(sources)
	opts.Logger(fmt.Sprintf("Discovered %d sources", len(sources)))
	return sources, nil
}

// sortSources orders by modification time (newest first), then priority.
func sortSources(sources []DataSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})
}

// ValidateSource checks that a source can be read and holds at least one
// result. It records the outcome on the source.
func ValidateSource(s *DataSource) error {
	err := validate(s)
	s.Valid = err == nil
	s.ValidationError = ""
	if err != nil {
		s.ValidationError = err.Error()
	}
	return err
}

func validate(s *DataSource) error {
	switch s.Type {
	case SourceTypeSQLite:
		r, err := NewSQLiteReader(*s)
		if err != nil {
			return err
		}
		defer r.Close()
		n, err := r.CountResults()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("database has no results")
		}
		s.ResultCount = n
		return nil
	case SourceTypeJSON, SourceTypeYAML:
		sf, err := loader.LoadScores(s.Path)
		if err != nil {
			return err
		}
		if sf.Empty() {
			return fmt.Errorf("score file has no scores")
		}
		s.ResultCount = 1
		return nil
	default:
		return fmt.Errorf("unknown source type: %s", s.Type)
	}
}

// SelectBestSource returns the newest valid source, preferring SQLite on ties.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	candidates := make([]DataSource, 0, len(sources))
	for _, s := range sources {
		if s.Valid {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return DataSource{}, fmt.Errorf("no valid sources discovered")
	}
	sortSources(candidates)
	return candidates[0], nil
}
