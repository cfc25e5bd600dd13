package sink

import (
	"encoding/json"
	"os"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
)

// JSONSink accumulates every finding in memory and writes the whole
// document once at Close, since a single JSON object can't be appended
// to incrementally without rewriting it, per spec.md §4.8 ("JSON").
type JSONSink struct {
	path string
	data map[string]map[string]map[string][]string
}

// NewJSONSink constructs a JSONSink that will write to path on Close.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path, data: make(map[string]map[string]map[string][]string)}
}

func (s *JSONSink) Write(f *model.Finding) error {
	s.data[f.Filename] = f.Sorted()
	return nil
}

func (s *JSONSink) Close() error {
	out, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0o644)
}
