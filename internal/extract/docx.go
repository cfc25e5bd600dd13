package extract

import (
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/kirkpatrickprice/piidigger-go/internal/chunk"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

var docxExts = []string{".docx", ".docm"}
var docxMimes = []string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// DocxExtractor walks a Word document's header, body, and footer
// paragraphs and tables with github.com/fumiama/go-docx, per spec.md
// §4.6 "DOCX": every paragraph and table cell feeds one shared
// ContentHandler for the whole document, followed by each comment's
// body text and a serialized form of the document's core properties.
type DocxExtractor struct{}

// NewDocxExtractor constructs a DocxExtractor.
func NewDocxExtractor() *DocxExtractor { return &DocxExtractor{} }

func (e *DocxExtractor) Handles() Handles {
	return Handles{Exts: docxExts, Mimes: docxMimes}
}

func (e *DocxExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		logger.Error("docx: open %s: %v", path, err)
		return
	}
	defer func() { _ = r.Close() }()

	doc := r.Editable()
	handler := chunk.NewContentHandler(maxContentSize)

	stop := false
	emit := func(line string) {
		if stop {
			return
		}
		handler.Append(line)
		if handler.Full() {
			if !yield(handler.Drain()) {
				stop = true
			}
		}
	}

	for _, hdr := range doc.Document.Headers {
		if stop || hdr == nil {
			break
		}
		for _, item := range hdr.Items {
			if stop {
				break
			}
			walkDocxItem(item, emit)
		}
	}

	for _, item := range doc.Document.Body.Items {
		if stop {
			break
		}
		walkDocxItem(item, emit)
	}

	for _, ftr := range doc.Document.Footers {
		if stop || ftr == nil {
			break
		}
		for _, item := range ftr.Items {
			if stop {
				break
			}
			walkDocxItem(item, emit)
		}
	}

	for _, cm := range doc.Document.Comments {
		if stop || cm == nil {
			break
		}
		for _, p := range cm.Paragraphs {
			emit(paragraphText(p))
		}
	}

	if !stop {
		if props := serializeCoreProperties(doc.Document.CoreProperties); props != "" {
			emit(props)
		}
		if tail := handler.Finalize(); tail != "" {
			yield(tail)
		}
	}
}

// walkDocxItem extracts plain-text runs from a body item (paragraph or
// table), invoking emit once per run of text found.
func walkDocxItem(item interface{}, emit func(string)) {
	switch v := item.(type) {
	case *docx.Paragraph:
		emit(paragraphText(v))
	case *docx.Table:
		for _, row := range v.TableRows {
			for _, cell := range row.TableCells {
				for _, p := range cell.Paragraphs {
					emit(paragraphText(p))
				}
			}
		}
	}
}

// paragraphText concatenates the visible text of a paragraph's runs and
// hyperlinks, skipping structural children (breaks, drawings).
func paragraphText(p *docx.Paragraph) string {
	var out string
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			if c.Text != nil {
				out += c.Text.Text + " "
			}
		case *docx.Hyperlink:
			for _, run := range c.Run {
				if run.Text != nil {
					out += run.Text.Text + " "
				}
			}
		}
	}
	return out
}

// serializeCoreProperties flattens the docProps/core.xml metadata
// (title, author, subject, keywords, ...) into a single "key: value"
// line so it gets scanned alongside the document's visible text.
func serializeCoreProperties(props *docx.CoreProperties) string {
	if props == nil {
		return ""
	}
	fields := []struct{ name, value string }{
		{"title", props.Title},
		{"subject", props.Subject},
		{"creator", props.Creator},
		{"keywords", props.Keywords},
		{"description", props.Description},
		{"lastModifiedBy", props.LastModifiedBy},
		{"category", props.Category},
		{"contentStatus", props.ContentStatus},
	}
	var parts []string
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, f.name+": "+f.value)
		}
	}
	return strings.Join(parts, ", ")
}
