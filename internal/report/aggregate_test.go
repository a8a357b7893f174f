package report

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favobot/internal"
)

func item(shop, product, uom string, qty *int, promo, comment string) internal.RecordedItem {
	return internal.RecordedItem{
		OrderDate: "06.11.2025",
		Shop:      shop,
		Product:   product,
		UoM:       uom,
		Qty:       qty,
		Promo:     promo,
		Comment:   comment,
	}
}

func TestBuildReportGroupsAndSums(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(3), "", ""),
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(5), "", ""),
	}

	rep := BuildReport("06.11.2025", items)
	require.Len(t, rep.Rows, 1)

	row := rep.Rows[0]
	require.NotNil(t, row.Qty)
	assert.Equal(t, 8, *row.Qty)
	require.NotNil(t, row.Liters)
	assert.Equal(t, 400, *row.Liters)
}

func TestBuildReportPromoMultiplier(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "немецкое", "кега 30 л", internal.IntPtr(3), "3+1", ""),
	}

	rep := BuildReport("06.11.2025", items)
	require.Len(t, rep.Rows, 1)
	require.NotNil(t, rep.Rows[0].Qty)
	assert.Equal(t, 12, *rep.Rows[0].Qty)
	require.NotNil(t, rep.Rows[0].Liters)
	assert.Equal(t, 360, *rep.Rows[0].Liters)
}

func TestBuildReportZeroQtyStaysBlank(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "непонятное", "", nil, "3+1", "нужна проверка"),
	}

	rep := BuildReport("06.11.2025", items)
	require.Len(t, rep.Rows, 1)
	assert.Nil(t, rep.Rows[0].Qty, "absent base quantity must never be multiplied into a value")
	assert.Nil(t, rep.Rows[0].Liters)
}

func TestBuildReportCommentSplitsRows(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(1), "", ""),
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(2), "", "по 485"),
	}

	rep := BuildReport("06.11.2025", items)
	assert.Len(t, rep.Rows, 2, "differing comments must never merge")
}

func TestBuildReportOrderIndependent(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(3), "", ""),
		item("Березка", "немецкое", "кега 30 л", internal.IntPtr(1), "3+1", ""),
		item("Лакомка", "бархатное", "кега 30 л", internal.IntPtr(2), "", ""),
		item("Березка", "квас", "кега 50 л", internal.IntPtr(4), "", ""),
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(1), "", ""),
	}

	want := BuildReport("06.11.2025", items)
	for i := 0; i < 10; i++ {
		shuffled := make([]internal.RecordedItem, len(items))
		copy(shuffled, items)
		rand.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := BuildReport("06.11.2025", shuffled)
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("aggregation depends on input order:\nwant %+v\ngot  %+v", want, got)
		}
	}
}

func TestBuildReportBanding(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(1), "", ""),
		item("Лакомка", "бархатное", "кега 30 л", internal.IntPtr(1), "", ""),
		item("Березка", "квас", "кега 50 л", internal.IntPtr(1), "", ""),
	}

	rep := BuildReport("06.11.2025", items)
	require.Len(t, rep.Rows, 3)

	assert.Equal(t, "Березка", rep.Rows[0].Shop)
	assert.Equal(t, "Лакомка", rep.Rows[1].Shop)
	assert.Equal(t, "", rep.Rows[2].Shop, "repeated shop must be blanked")

	last := ""
	for _, row := range rep.Rows {
		if row.Shop != "" {
			require.NotEqual(t, last, row.Shop, "non-blank shop repeats on consecutive rows")
			last = row.Shop
		}
	}
}

func TestBuildReportTotals(t *testing.T) {
	items := []internal.RecordedItem{
		item("Лакомка", "жигули", "кега 50 л", internal.IntPtr(2), "", ""),
		item("Березка", "жигули", "кега 50 л", internal.IntPtr(3), "", ""),
		item("Березка", "немецкое", "кега 30 л", internal.IntPtr(1), "3+1", ""),
	}

	rep := BuildReport("06.11.2025", items)
	require.Len(t, rep.Totals, 2)

	assert.Equal(t, internal.TotalRow{Product: "жигули", UoM: "кега 50 л", Qty: 5, Liters: 250}, rep.Totals[0])
	assert.Equal(t, internal.TotalRow{Product: "немецкое", UoM: "кега 30 л", Qty: 4, Liters: 120}, rep.Totals[1])
}

func TestBuildReportEmpty(t *testing.T) {
	rep := BuildReport("06.11.2025", nil)
	assert.Empty(t, rep.Rows)
	assert.Empty(t, rep.Totals)
	assert.Equal(t, "06.11.2025", rep.OrderDate)
}
