package report

import (
	"sort"

	"favobot/internal"
	"favobot/internal/parse"
)

// aggKey is the composite row identity. Comment participates, so the same
// product ordered with different notes stays on separate rows.
type aggKey struct {
	shop    string
	product string
	uom     string
	promo   string
	comment string
}

type totalKey struct {
	product string
	uom     string
}

// BuildReport consolidates the recorded items of one reporting date into
// sorted, banded detail rows plus a per-product totals block. It is a pure
// function of the input multiset: permuting items changes nothing.
func BuildReport(orderDate string, items []internal.RecordedItem) internal.Report {
	sums := map[aggKey]int{}
	for _, it := range items {
		k := aggKey{shop: it.Shop, product: it.Product, uom: it.UoM, promo: it.Promo, comment: it.Comment}
		// Missing quantities contribute nothing but still claim a row.
		if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		if it.Qty != nil {
			sums[k] += *it.Qty
		}
	}

	rows := make([]internal.ReportRow, 0, len(sums))
	for k, base := range sums {
		row := internal.ReportRow{
			Shop:    k.shop,
			Product: k.product,
			UoM:     k.uom,
			Promo:   k.promo,
			Comment: k.comment,
		}
		if base != 0 {
			eff := base * parse.PromoMultiplier(k.promo)
			row.Qty = internal.IntPtr(eff)
			if per := parse.LitersPerUnit(k.uom, k.product); per != 0 {
				row.Liters = internal.IntPtr(eff * per)
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Shop != b.Shop {
			return a.Shop < b.Shop
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if a.UoM != b.UoM {
			return a.UoM < b.UoM
		}
		if a.Promo != b.Promo {
			return a.Promo < b.Promo
		}
		return a.Comment < b.Comment
	})

	totals := buildTotals(rows)

	// Banding: within the sorted sequence only the first row of a shop
	// block keeps its shop name.
	lastShop := ""
	for i := range rows {
		if rows[i].Shop == lastShop {
			rows[i].Shop = ""
		} else {
			lastShop = rows[i].Shop
		}
	}

	return internal.Report{OrderDate: orderDate, Rows: rows, Totals: totals}
}

func buildTotals(rows []internal.ReportRow) []internal.TotalRow {
	sums := map[totalKey]*internal.TotalRow{}
	for _, row := range rows {
		k := totalKey{product: row.Product, uom: row.UoM}
		total, ok := sums[k]
		if !ok {
			total = &internal.TotalRow{Product: k.product, UoM: k.uom}
			sums[k] = total
		}
		if row.Qty != nil {
			total.Qty += *row.Qty
		}
		if row.Liters != nil {
			total.Liters += *row.Liters
		}
	}

	out := make([]internal.TotalRow, 0, len(sums))
	for _, total := range sums {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Product != out[j].Product {
			return out[i].Product < out[j].Product
		}
		return out[i].UoM < out[j].UoM
	})
	return out
}
