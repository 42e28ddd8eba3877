package export

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/compassviz/pkg/metrics"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// RenderJSON writes the scene graph as indented JSON for external backends.
func RenderJSON(w io.Writer, s *scene.Scene) error {
	if s == nil {
		return ErrNoScene
	}
	defer metrics.Track(metrics.JSONRender)()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
