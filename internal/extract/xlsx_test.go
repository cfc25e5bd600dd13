package extract

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

func TestXLSXExtractorReadsCellsAndStopsAtBlankColLimit(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Sheet1"
	if err := f.SetCellValue(sheet, "A1", "visa on file"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	if err := f.SetCellValue(sheet, "B1", "4893013335386137"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}

	farCol, err := excelize.ColumnNumberToName(excelBlankColLimit + 10)
	if err != nil {
		t.Fatalf("ColumnNumberToName() error = %v", err)
	}
	if err := f.SetCellValue(sheet, farCol+"1", "unreachable"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}

	logger := logging.NewLogManager(logging.ERROR, 4).Logger("test")
	var got []string
	NewXLSXExtractor().ReadFile(path, logger, func(chunk string) bool {
		got = append(got, chunk)
		return true
	})

	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "4893013335386137") {
		t.Fatalf("yielded chunks = %v, want the cell value present", got)
	}
	if strings.Contains(joined, "unreachable") {
		t.Errorf("yielded chunks = %v, want excelBlankColLimit to stop the row scan before the far cell", got)
	}
}

func TestXLSXExtractorHandles(t *testing.T) {
	h := NewXLSXExtractor().Handles()
	found := false
	for _, e := range h.Exts {
		if e == ".xlsx" {
			found = true
		}
	}
	if !found {
		t.Errorf("Handles().Exts = %v, want to contain .xlsx", h.Exts)
	}
}
