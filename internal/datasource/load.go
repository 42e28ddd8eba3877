package datasource

import (
	"fmt"

	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// LoadProfile detects the source at path (a file or a directory) and loads
// one participant profile from it. For databases, resultID selects the
// result; zero means the latest.
func LoadProfile(path string, resultID int64) (render.Profile, DataSource, error) {
	src, err := Detect(path)
	if err != nil {
		return render.Profile{}, DataSource{}, err
	}
	p, err := LoadFromSource(src, resultID)
	return p, src, err
}

// LoadFromSource loads a profile from a specific DataSource, dispatching to
// the appropriate reader based on source type.
func LoadFromSource(source DataSource, resultID int64) (render.Profile, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return render.Profile{}, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		if resultID == 0 {
			if resultID, err = reader.LatestResultID(); err != nil {
				return render.Profile{}, err
			}
		}
		return reader.LoadResult(resultID)

	case SourceTypeJSON, SourceTypeYAML:
		sf, err := loader.LoadScores(source.Path)
		if err != nil {
			return render.Profile{}, err
		}
		return sf.Profile(), nil

	default:
		return render.Profile{}, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
