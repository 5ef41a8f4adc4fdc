package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sewingOrder(t *testing.T) *production.ProductionOrder {
	t.Helper()
	items := []production.OrderItem{production.NewOrderItem("Azul", "#0000FF", production.SizeGrid{"M": 10, "P": 10})}
	o, err := production.NewProductionOrder("1001", "REF-9", "Blusa", "Viscose", production.GridTypeStandard, items)
	require.NoError(t, err)
	require.NoError(t, o.ConfirmCut(items))
	_, err = o.Distribute(uuid.New(), "Ana", production.DistributionRequest{"Azul": {"P": 4, "M": 2}})
	require.NoError(t, err)
	return o
}

func TestWorkbookWriter_OrdersWorkbook(t *testing.T) {
	sewing := sewingOrder(t)
	planned, err := production.NewProductionOrder("1002", "REF-10", "", "", "", []production.OrderItem{
		production.NewOrderItem("Preto", "", production.SizeGrid{"G": 5}),
	})
	require.NoError(t, err)

	w := NewWorkbookWriter(time.UTC)
	data, err := w.OrdersWorkbook([]production.ProductionOrder{*sewing, *planned}, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ordersSheet, splitsSheet}, f.GetSheetList())

	cell := func(sheet, name string) string {
		v, err := f.GetCellValue(sheet, name)
		require.NoError(t, err)
		return v
	}

	t.Run("orders sheet", func(t *testing.T) {
		assert.Equal(t, "Order", cell(ordersSheet, "A1"))
		assert.Equal(t, "1001", cell(ordersSheet, "A2"))
		assert.Equal(t, "REF-9", cell(ordersSheet, "B2"))
		assert.Equal(t, "SEWING", cell(ordersSheet, "F2"))
		assert.Equal(t, "20", cell(ordersSheet, "H2"))
		assert.Equal(t, "6", cell(ordersSheet, "I2"))
		assert.Equal(t, "14", cell(ordersSheet, "K2"))
		assert.Equal(t, "", cell(ordersSheet, "M2"))
		assert.Equal(t, "PLANNED", cell(ordersSheet, "F3"))
	})

	t.Run("summary row", func(t *testing.T) {
		assert.Equal(t, "Total", cell(ordersSheet, "A5"))
		assert.Equal(t, "2 orders", cell(ordersSheet, "B5"))
		assert.Equal(t, "Generated 2026-03-10 15:00", cell(ordersSheet, "C5"))
		assert.Equal(t, "25", cell(ordersSheet, "G5"))
	})

	t.Run("splits sheet", func(t *testing.T) {
		assert.Equal(t, "Seamstress", cell(splitsSheet, "B1"))
		assert.Equal(t, "1001", cell(splitsSheet, "A2"))
		assert.Equal(t, "Ana", cell(splitsSheet, "B2"))
		assert.Equal(t, "Azul", cell(splitsSheet, "D2"))
		assert.Equal(t, "P:4 M:2", cell(splitsSheet, "E2"))
		assert.Equal(t, "6", cell(splitsSheet, "F2"))
		assert.Equal(t, "", cell(splitsSheet, "A3"))
	})
}

func TestWorkbookWriter_Empty(t *testing.T) {
	data, err := NewWorkbookWriter(nil).OrdersWorkbook(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDescribeSizes(t *testing.T) {
	assert.Equal(t, "P:1 GG:2 XL:3", describeSizes(production.SizeGrid{"XL": 3, "GG": 2, "P": 1, "M": 0}))
	assert.Equal(t, "", describeSizes(nil))
}
