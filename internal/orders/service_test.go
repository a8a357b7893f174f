package orders

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favobot/internal"
	"favobot/internal/parse"
	"favobot/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "favo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db)
}

func TestRecordAndReport(t *testing.T) {
	svc := newTestService(t)

	res := parse.ParseMessage("Лакомка\nНемецкое акция\nЖигули 2", "", "06.11.2025")
	require.Equal(t, internal.ResultOrder, res.Type)

	rec, err := svc.Record(res, 42, 1, "Лакомка\nНемецкое акция\nЖигули 2", "")
	require.NoError(t, err)
	assert.Equal(t, "06.11.2025", rec.OrderDate)
	assert.Equal(t, 2, rec.Items)
	assert.Equal(t, 0, rec.Review)
	assert.NotEmpty(t, rec.TraceID)

	rep, err := svc.ReportForDate("06.11.2025")
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Лакомка", rep.Rows[0].Shop)
	assert.Equal(t, "", rep.Rows[1].Shop)

	// 3+1 on one German keg: four effective.
	for _, row := range rep.Rows {
		if row.Product == "немецкое" {
			require.NotNil(t, row.Qty)
			assert.Equal(t, 4, *row.Qty)
		}
	}
}

func TestRecordFallbackItemsStayUncatalogued(t *testing.T) {
	svc := newTestService(t)

	res := parse.ParseMessage("Лакомка\nчто-то странное", "", "06.11.2025")
	require.Equal(t, internal.ResultOrder, res.Type)

	rec, err := svc.Record(res, 42, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Review)
}

func TestRecordRejectsUnknownResult(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Record(internal.ParseResult{Type: internal.ResultUnknown}, 42, 1, "", "")
	assert.Error(t, err)
}

func TestRecordUsesFallbackDate(t *testing.T) {
	svc := newTestService(t)

	res := parse.ParseMessage("Лакомка\nЖигули 2", "", "")
	require.Equal(t, internal.ResultOrder, res.Type)
	require.Nil(t, res.OrderDate)

	rec, err := svc.Record(res, 42, 1, "", "09.11.2025")
	require.NoError(t, err)
	assert.Equal(t, "09.11.2025", rec.OrderDate)

	rep, err := svc.ReportForDate("09.11.2025")
	require.NoError(t, err)
	assert.Len(t, rep.Rows, 1)
}
