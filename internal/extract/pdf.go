package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirkpatrickprice/piidigger-go/internal/chunk"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

var pdfExts = []string{".pdf"}
var pdfMimes = []string{"application/pdf"}

// PDFExtractor reads a PDF page by page with github.com/ledongthuc/pdf,
// splitting each page's plain text on newlines before finalizing, per
// spec.md §4.6 "PDF".
type PDFExtractor struct{}

// NewPDFExtractor constructs a PDFExtractor.
func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

func (e *PDFExtractor) Handles() Handles {
	return Handles{Exts: pdfExts, Mimes: pdfMimes}
}

func (e *PDFExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
	f, r, err := pdf.Open(path)
	if err != nil {
		logger.Error("pdf: open %s: %v", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	handler := chunk.NewContentHandler(maxContentSize)
	stop := false
	emit := func(line string) {
		if stop {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		handler.Append(line)
		if handler.Full() {
			if !yield(handler.Drain()) {
				stop = true
			}
		}
	}

	fonts := make(map[string]*pdf.Font)
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if stop {
			break
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Info("pdf: %s: page %d: %v", path, i, err)
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			emit(line)
		}
	}

	if !stop {
		for _, v := range pdfInfoValues(r) {
			emit(v)
		}
		if tail := handler.Finalize(); tail != "" {
			yield(tail)
		}
	}
}

// pdfInfoKeys lists the Info dictionary entries worth scanning, per
// spec.md §4.6 "append each metadata value" rather than Title alone.
var pdfInfoKeys = []string{
	"Title", "Author", "Subject", "Keywords", "Creator", "Producer",
	"CreationDate", "ModDate",
}

// pdfInfoValues pulls every non-null, non-empty entry named in
// pdfInfoKeys out of the trailer's Info dictionary.
func pdfInfoValues(r *pdf.Reader) []string {
	trailer := r.Trailer()
	info := trailer.Key("Info")
	if info.IsNull() {
		return nil
	}
	var values []string
	for _, key := range pdfInfoKeys {
		v := info.Key(key)
		if v.IsNull() {
			continue
		}
		s := v.RawString()
		if s == "" {
			continue
		}
		values = append(values, s)
	}
	return values
}
