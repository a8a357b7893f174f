package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"favobot/internal"
)

func cellValue(t *testing.T, f *excelize.File, col, row int) string {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatal(err)
	}
	v, err := f.GetCellValue(sheetName, cell)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestExportXLSX(t *testing.T) {
	rep := internal.Report{
		OrderDate: "06.11.2025",
		Rows: []internal.ReportRow{
			{Shop: "Лакомка", Product: "жигули", UoM: "кега 50 л", Qty: internal.IntPtr(3), Liters: internal.IntPtr(150), Promo: ""},
			{Shop: "", Product: "немецкое", UoM: "кега 30 л", Qty: internal.IntPtr(12), Liters: internal.IntPtr(360), Promo: "3+1"},
			{Shop: "Весна", Product: "углекислота", UoM: "баллон", Qty: nil, Promo: "", Comment: "нужна проверка"},
		},
		Totals: []internal.TotalRow{
			{Product: "жигули", UoM: "кега 50 л", Qty: 3, Liters: 150},
			{Product: "немецкое", UoM: "кега 30 л", Qty: 12, Liters: 360},
		},
	}

	dir := t.TempDir()
	path, err := ExportXLSX(rep, dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "orders_06-11-2025.xlsx"); path != want {
		t.Fatalf("path=%s want=%s", path, want)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := cellValue(t, f, 1, 1); got != "Отчёт по заявкам на 06.11.2025" {
		t.Fatalf("title=%q", got)
	}
	if got := cellValue(t, f, 1, 3); got != "Магазин" {
		t.Fatalf("header=%q", got)
	}

	// first detail row
	if got := cellValue(t, f, 1, 4); got != "Лакомка" {
		t.Fatalf("shop=%q", got)
	}
	if got := cellValue(t, f, 4, 4); got != "3" {
		t.Fatalf("qty=%q", got)
	}

	// banded repeat shop stays blank
	if got := cellValue(t, f, 1, 5); got != "" {
		t.Fatalf("banded shop=%q", got)
	}
	if got := cellValue(t, f, 6, 5); got != "3+1" {
		t.Fatalf("promo=%q", got)
	}

	// review line keeps qty and liters empty
	if got := cellValue(t, f, 4, 6); got != "" {
		t.Fatalf("review qty=%q", got)
	}
	if got := cellValue(t, f, 7, 6); got != "нужна проверка" {
		t.Fatalf("comment=%q", got)
	}

	totalsTitle := 3 + len(rep.Rows) + 3
	if got := cellValue(t, f, 1, totalsTitle); got != "ИТОГО ПО ТОВАРАМ" {
		t.Fatalf("totals title=%q", got)
	}
	if got := cellValue(t, f, 1, totalsTitle+2); got != "жигули" {
		t.Fatalf("totals product=%q", got)
	}
	if got := cellValue(t, f, 4, totalsTitle+3); got != "360" {
		t.Fatalf("totals liters=%q", got)
	}
}

func TestExportXLSXEmptyReport(t *testing.T) {
	rep := internal.Report{OrderDate: "01.01.2026"}
	path, err := ExportXLSX(rep, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := cellValue(t, f, 1, 6); got != "ИТОГО ПО ТОВАРАМ" {
		t.Fatalf("totals title=%q", got)
	}
}
