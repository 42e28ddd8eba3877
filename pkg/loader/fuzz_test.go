package loader_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/vanderheijden86/compassviz/pkg/loader"
	"github.com/vanderheijden86/compassviz/pkg/render"
)

// Run with: go test -fuzz=FuzzParseScores -fuzztime=1m ./pkg/loader/

var fuzzSeeds = []struct {
	format loader.Format
	doc    string
}{
	{loader.FormatJSON, `{"user":"A","clusters":{"Drive & Achievement":{"average":4.2,"percentage":84}}}`},
	{loader.FormatJSON, `{"constructs":{"Focus":{"value":"73"},"Grit":{"percentage":null}}}`},
	{loader.FormatJSON, `{"constructs":{"x":{"percentage":1e309}}}`},
	{loader.FormatJSON, `{"clusters":{"":{}}}`},
	{loader.FormatJSON, `[]`},
	{loader.FormatJSON, "\xef\xbb\xbf{}"},
	{loader.FormatYAML, "user: B\nconstructs:\n  Focus:\n    percentage: 55\n"},
	{loader.FormatYAML, "constructs:\n  Focus: 12\n"},
	{loader.FormatYAML, "clusters: [1, 2]\n"},
	{loader.FormatYAML, ""},
}

// FuzzParseScores checks that no input panics the parser or the chart
// builders, and that parsed scores never surface as NaN.
func FuzzParseScores(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s.format == loader.FormatYAML, []byte(s.doc))
	}
	engine := render.NewEngine(8)

	f.Fuzz(func(t *testing.T, yamlDoc bool, data []byte) {
		format := loader.FormatJSON
		if yamlDoc {
			format = loader.FormatYAML
		}
		sf, err := loader.ParseScores(bytes.NewReader(data), format)
		if err != nil {
			return
		}
		p := sf.Profile()
		for _, e := range append(p.ClusterEntries(), p.ConstructEntries()...) {
			if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
				t.Fatalf("%s: non-finite value %v", e.Name, e.Value)
			}
		}
		_ = engine.Build(p, render.DefaultSettings())
	})
}
