package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"favobot/internal"
)

const sheetName = "Заявки"

var detailHeaders = []string{"Магазин", "Товар", "Ед. изм.", "Кол-во", "Литры", "Акция", "Комментарий"}

var totalHeaders = []string{"Товар", "Ед. изм.", "Кол-во", "Литры"}

// ExportXLSX renders a report into an xlsx file: a title line, the banded
// detail table and a trailing ИТОГО block. Returns the written path.
func ExportXLSX(rep internal.Report, outputDir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", err
	}

	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, value)
	}

	set(1, 1, "Отчёт по заявкам на "+rep.OrderDate)

	headerRow := 3
	for i, h := range detailHeaders {
		set(i+1, headerRow, h)
	}
	for i, row := range rep.Rows {
		r := headerRow + 1 + i
		set(1, r, row.Shop)
		set(2, r, row.Product)
		set(3, r, row.UoM)
		set(4, r, derefInt(row.Qty))
		set(5, r, derefInt(row.Liters))
		set(6, r, row.Promo)
		set(7, r, row.Comment)
	}

	totalsTitle := headerRow + len(rep.Rows) + 3
	set(1, totalsTitle, "ИТОГО ПО ТОВАРАМ")
	for i, h := range totalHeaders {
		set(i+1, totalsTitle+1, h)
	}
	for i, total := range rep.Totals {
		r := totalsTitle + 2 + i
		set(1, r, total.Product)
		set(2, r, total.UoM)
		set(3, r, total.Qty)
		set(4, r, total.Liters)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	filename := "orders_" + strings.ReplaceAll(rep.OrderDate, ".", "-") + ".xlsx"
	path := filepath.Join(outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
