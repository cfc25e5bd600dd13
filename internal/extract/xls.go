package extract

import (
	"github.com/extrame/xls"

	"github.com/kirkpatrickprice/piidigger-go/internal/chunk"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

var xlsExts = []string{".xls"}
var xlsMimes = []string{"application/vnd.ms-excel"}

// XLSExtractor reads the legacy binary Excel format with
// github.com/extrame/xls, applying the same row/cell walk and blank-run
// cutoff as XLSXExtractor (spec.md §4.6 "XLS").
type XLSExtractor struct{}

// NewXLSExtractor constructs an XLSExtractor.
func NewXLSExtractor() *XLSExtractor { return &XLSExtractor{} }

func (e *XLSExtractor) Handles() Handles {
	return Handles{Exts: xlsExts, Mimes: xlsMimes}
}

func (e *XLSExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		logger.Error("xls: open %s: %v", path, err)
		return
	}

	handler := chunk.NewContentHandler(maxContentSize)
	stop := false
	emit := func(line string) {
		if stop || line == "" {
			return
		}
		handler.Append(line)
		if handler.Full() {
			if !yield(handler.Drain()) {
				stop = true
			}
		}
	}

	for i := 0; i < wb.NumSheets(); i++ {
		if stop {
			break
		}
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		blankRuns := 0
		for r := 0; r <= int(sheet.MaxRow); r++ {
			if stop {
				break
			}
			row := sheet.Row(r)
			if row == nil {
				blankRuns++
				if blankRuns > excelBlankRowLimit {
					break
				}
				continue
			}
			line := xlsRowText(row)
			if line == "" {
				blankRuns++
				if blankRuns > excelBlankRowLimit {
					break
				}
				continue
			}
			blankRuns = 0
			emit(line)
		}
	}

	if !stop {
		if tail := handler.Finalize(); tail != "" {
			yield(tail)
		}
	}
}

// xlsRowText joins a row's cell values with spaces, stopping once
// excelBlankColLimit consecutive blank cells are seen.
func xlsRowText(row *xls.Row) string {
	var out string
	last := row.LastCol()
	blankCols := 0
	for c := 0; c <= last; c++ {
		v := row.Col(c)
		if v == "" {
			blankCols++
			if blankCols > excelBlankColLimit {
				break
			}
			continue
		}
		blankCols = 0
		if out != "" {
			out += " "
		}
		out += coerceNumeric(v)
	}
	return out
}
