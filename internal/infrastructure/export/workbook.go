// Package export renders production orders as spreadsheets.
package export

import (
	"fmt"
	"strings"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
	"github.com/atelier/backend/internal/domain/production"
	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet = "Orders"
	splitsSheet = "Splits"
	dateLayout  = "2006-01-02 15:04"
)

var (
	orderHeaders = []string{
		"Order", "Reference", "Description", "Fabric", "Grid", "Status",
		"Planned", "Cut", "Distributed", "Finished", "Remaining", "Created", "Closed",
	}
	orderColWidths = []float64{10, 14, 30, 18, 10, 10, 9, 9, 11, 9, 10, 17, 17}

	splitHeaders   = []string{"Order", "Seamstress", "Status", "Color", "Sizes", "Pieces", "Sent", "Returned"}
	splitColWidths = []float64{10, 22, 10, 14, 30, 8, 17, 17}
)

var _ appproduction.ReportWriter = (*WorkbookWriter)(nil)

// WorkbookWriter builds XLSX workbooks with one sheet of orders and one of
// seamstress splits
type WorkbookWriter struct {
	location *time.Location
}

// NewWorkbookWriter creates a writer that prints times in loc (local when nil)
func NewWorkbookWriter(loc *time.Location) *WorkbookWriter {
	if loc == nil {
		loc = time.Local
	}
	return &WorkbookWriter{location: loc}
}

// OrdersWorkbook renders the orders and returns the XLSX bytes
func (w *WorkbookWriter) OrdersWorkbook(orders []production.ProductionOrder, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(splitsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, ordersSheet, orderHeaders, orderColWidths, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, splitsSheet, splitHeaders, splitColWidths, headerStyle); err != nil {
		return nil, err
	}

	var planned, cut, remaining int
	splitRow := 2
	for i := range orders {
		o := &orders[i]
		planned += o.PlannedPieces()
		cut += o.CutPieces()
		remaining += o.RemainingPieces()

		row := []interface{}{
			o.OrderNumber, o.ReferenceCode, o.Description, o.Fabric, string(o.GridType), string(o.Status),
			o.PlannedPieces(), o.CutPieces(), o.DistributedPieces(), o.FinishedPieces(), o.RemainingPieces(),
			w.format(&o.CreatedAt), w.format(o.FinishedAt),
		}
		if err := setRow(f, ordersSheet, i+2, row); err != nil {
			return nil, err
		}

		for j := range o.Splits {
			s := &o.Splits[j]
			for _, item := range s.Items {
				row := []interface{}{
					o.OrderNumber, s.SeamstressName, string(s.Status), item.Color,
					describeSizes(item.Sizes), item.Sizes.Total(),
					w.format(&s.CreatedAt), w.format(s.FinishedAt),
				}
				if err := setRow(f, splitsSheet, splitRow, row); err != nil {
					return nil, err
				}
				splitRow++
			}
		}
	}

	summaryRow := len(orders) + 3
	summary := []interface{}{
		"Total", fmt.Sprintf("%d orders", len(orders)), "Generated " + w.format(&generatedAt), "", "", "",
		planned, cut, "", "", remaining,
	}
	if err := setRow(f, ordersSheet, summaryRow, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ordersSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("M%d", summaryRow), summaryStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return err
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func (w *WorkbookWriter) format(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(w.location).Format(dateLayout)
}

// describeSizes renders a grid as "P:10 M:5" in size order, skipping zeros
func describeSizes(sizes production.SizeGrid) string {
	parts := make([]string, 0, len(sizes))
	for _, label := range sizes.Labels() {
		if qty := sizes[label]; qty > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", label, qty))
		}
	}
	return strings.Join(parts, " ")
}
