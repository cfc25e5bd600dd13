package extract

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirkpatrickprice/piidigger-go/internal/chunk"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

var xlsxExts = []string{".xlsx", ".xlsm"}
var xlsxMimes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// excelBlankRowLimit bounds how many consecutive blank rows a sheet scan
// will tolerate before treating the rest of the sheet as empty and
// moving on; spreadsheets with a used-range far larger than their real
// content are common and shouldn't cost a full cell-by-cell walk.
const excelBlankRowLimit = 200

// excelBlankColLimit bounds how many consecutive blank cells a single
// row scan will tolerate before abandoning the rest of that row; wide
// sheets with a used-range far past their real columns are as common
// as the blank-row case and shouldn't cost a full row-by-row walk.
const excelBlankColLimit = 50

// XLSXExtractor streams every sheet's cells with github.com/xuri/excelize/v2,
// per spec.md §4.6 "XLSX". Each sheet's buffered text is flushed as a
// final chunk at the end of that sheet, so the next sheet starts with an
// empty buffer; the blank-run counter is also reset per sheet, keeping
// the early-stop heuristic sheet-local.
type XLSXExtractor struct{}

// NewXLSXExtractor constructs an XLSXExtractor.
func NewXLSXExtractor() *XLSXExtractor { return &XLSXExtractor{} }

func (e *XLSXExtractor) Handles() Handles {
	return Handles{Exts: xlsxExts, Mimes: xlsxMimes}
}

func (e *XLSXExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Error("xlsx: open %s: %v", path, err)
		return
	}
	defer func() { _ = f.Close() }()

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

	for _, sheet := range f.GetSheetList() {
		if stop {
			break
		}
		rows, err := f.Rows(sheet)
		if err != nil {
			logger.Error("xlsx: %s: sheet %s: %v", path, sheet, err)
			continue
		}
		blankRuns := 0
		for rows.Next() {
			if stop {
				break
			}
			cells, err := rows.Columns()
			if err != nil {
				continue
			}
			line := rowText(cells)
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
		_ = rows.Close()

		if !stop {
			if tail := handler.Finalize(); tail != "" && !yield(tail) {
				stop = true
			}
		}
	}
}

// rowText joins a row's cell values with spaces, coercing integer-valued
// floats (excelize formats "3" as "3" already in most cases, but
// formula results and some numeric cells come back as "3.0000000000"-
// style floats) down to their integer form when exact; a value such as
// "3.0000000000001" is not integer-valued and is kept as is. It stops walking
// the row once excelBlankColLimit consecutive blank cells are seen.
func rowText(cells []string) string {
	parts := make([]string, 0, len(cells))
	blankCols := 0
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			blankCols++
			if blankCols > excelBlankColLimit {
				break
			}
			continue
		}
		blankCols = 0
		parts = append(parts, coerceNumeric(c))
	}
	return strings.Join(parts, " ")
}

func coerceNumeric(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
