package sink

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
)

// YAMLSink appends one YAML document per finding as it arrives, rather
// than accumulating like JSONSink, since YAML's document-stream format
// (--- separated) supports incremental writes naturally (spec.md §4.8
// "Text/YAML").
type YAMLSink struct {
	f *os.File
}

// NewYAMLSink opens path for writing (truncating any existing content).
func NewYAMLSink(path string) (*YAMLSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &YAMLSink{f: f}, nil
}

// yamlFinding is the on-disk document shape for one file's results.
type yamlFinding struct {
	Filename string                             `yaml:"filename"`
	Results  map[string]map[string][]string `yaml:"results"`
}

func (s *YAMLSink) Write(f *model.Finding) error {
	doc := yamlFinding{Filename: f.Filename, Results: f.Sorted()}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := s.f.Write([]byte("---\n")); err != nil {
		return err
	}
	_, err = s.f.Write(out)
	return err
}

func (s *YAMLSink) Close() error {
	return s.f.Close()
}
