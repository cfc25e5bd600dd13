package sink

import (
	"encoding/csv"
	"os"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
)

// CSVSink appends one row per (filename, datatype, value) triple, header
// "filename,datatype,value" (spec.md §4.8 "CSV"). datatype is the
// detector name; value is "subtype: redactedString" so the brand/subtype
// distinction survives flattening into a single row shape.
type CSVSink struct {
	f *os.File
	w *csv.Writer
}

// NewCSVSink opens path, truncating any existing content, and writes the
// header row immediately.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "datatype", "value"}); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &CSVSink{f: f, w: w}, nil
}

func (s *CSVSink) Write(f *model.Finding) error {
	for detectorName, bySubtype := range f.Sorted() {
		for subtype, values := range bySubtype {
			for _, v := range values {
				value := subtype + ": " + v
				if err := s.w.Write([]string{f.Filename, detectorName, value}); err != nil {
					return err
				}
			}
		}
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
