// Package loader reads participant score files and axis lists from disk.
//
// Score files are JSON or YAML documents of the form
//
//	user: Sam
//	test: Strengths Compass
//	clusters:
//	  Drive & Achievement: {average: 4.1, percentage: 82}
//	constructs:
//	  Empathy: 64
//
// where each score may take any of the shapes model.RawScore accepts.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/compassviz/pkg/debug"
	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/radar"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// ScoresDirEnvVar names a directory searched by FindScoreFile when no path
// is given.
const ScoresDirEnvVar = "CVIZ_SCORES_DIR"

// PreferredScoreNames defines the lookup order inside a directory.
var PreferredScoreNames = []string{"scores.json", "scores.yaml", "scores.yml"}

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported score file format")

// Format is a score file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ScoreFile is one participant's result document.
type ScoreFile struct {
	User          string             `json:"user,omitempty" yaml:"user,omitempty"`
	Test          string             `json:"test,omitempty" yaml:"test,omitempty"`
	Clusters      model.ScoreMap     `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	Constructs    model.ScoreMap     `json:"constructs,omitempty" yaml:"constructs,omitempty"`
	ClusterAxes   []model.AxisConfig `json:"cluster_axes,omitempty" yaml:"cluster_axes,omitempty"`
	ConstructAxes []model.AxisConfig `json:"construct_axes,omitempty" yaml:"construct_axes,omitempty"`
}

// Empty reports whether the file carries no scores at all.
func (f ScoreFile) Empty() bool {
	return len(f.Clusters) == 0 && len(f.Constructs) == 0
}

// Profile converts the file into render input.
func (f ScoreFile) Profile() render.Profile {
	return render.Profile{
		Subject:       f.User,
		Test:          f.Test,
		ClusterAxes:   f.ClusterAxes,
		ConstructAxes: f.ConstructAxes,
		Clusters:      f.Clusters,
		Constructs:    f.Constructs,
	}
}

// FindScoreFile locates a score file in dir. Prefers scores.json, then the
// YAML variants, then any other non-empty .json/.yaml file. Backups are
// skipped.
func FindScoreFile(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv(ScoresDirEnvVar)
	}
	if dir == "" {
		return "", fmt.Errorf("no score directory given and %s is unset", ScoresDirEnvVar)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read score directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, err := FormatFor(name); err != nil {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") || strings.HasPrefix(name, ".") {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no score file found in %s", dir)
	}

	nonEmpty := func(name string) bool {
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && info.Size() > 0
	}
	for _, preferred := range PreferredScoreNames {
		for _, name := range candidates {
			if name == preferred && nonEmpty(name) {
				return filepath.Join(dir, name), nil
			}
		}
	}
	for _, name := range candidates {
		if nonEmpty(name) {
			return filepath.Join(dir, name), nil
		}
	}
	return filepath.Join(dir, candidates[0]), nil
}

// LoadScores reads a score file, picking the decoder from the extension.
func LoadScores(path string) (ScoreFile, error) {
	defer metrics.Track(metrics.ScoreLoad)()

	format, err := FormatFor(path)
	if err != nil {
		return ScoreFile{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ScoreFile{}, fmt.Errorf("no score file at %s: %w", path, err)
		}
		return ScoreFile{}, fmt.Errorf("open scores: %w", err)
	}
	defer f.Close()

	sf, err := ParseScores(f, format)
	if err != nil {
		return ScoreFile{}, fmt.Errorf("%s: %w", path, err)
	}
	debug.Log("loader: %s has %d clusters, %d constructs", path, len(sf.Clusters), len(sf.Constructs))
	return sf, nil
}

// ParseScores decodes a score document.
func ParseScores(r io.Reader, format Format) (ScoreFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ScoreFile{}, fmt.Errorf("read scores: %w", err)
	}
	data = stripBOM(data)

	var sf ScoreFile
	if len(bytes.TrimSpace(data)) == 0 {
		return sf, nil
	}
	if err := decode(data, format, &sf); err != nil {
		return ScoreFile{}, fmt.Errorf("parse scores: %w", err)
	}
	return sf, nil
}

// LoadAxes reads an ordered axis list (a JSON or YAML array of
// {id, name, order}). The result is sorted by order.
func LoadAxes(path string) ([]model.AxisConfig, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read axes: %w", err)
	}
	var axes []model.AxisConfig
	if err := decode(stripBOM(data), format, &axes); err != nil {
		return nil, fmt.Errorf("%s: parse axes: %w", path, err)
	}
	for i, a := range axes {
		if strings.TrimSpace(a.ID) == "" && strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%s: axis %d has neither id nor name", path, i)
		}
	}
	return model.SortAxes(axes), nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return ErrUnsupportedFormat
	}
}

// UnmatchedScores lists score names that the chart matcher pairs with no
// axis. Sorted.
func UnmatchedScores(scores model.ScoreMap, axes []model.AxisConfig) []string {
	var out []string
	for _, e := range scores.Entries(nil) {
		one := []model.ScoreEntry{e}
		matched := false
		for _, a := range axes {
			if _, ok := radar.DefaultMatcher.Match(a, one); ok {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, e.Name)
		}
	}
	return out
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
