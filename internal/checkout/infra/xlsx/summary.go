package xlsx

import (
	"io"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/xuri/excelize/v2"
)

const Sheet = "Resumen"

// WriteSummary writes sum as a one-sheet workbook: a header row, one row per
// line and a total row.
func WriteSummary(w io.Writer, sum *domain.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(Sheet)
	if err != nil {
		return err
	}

	header := []interface{}{"Producto", "Cantidad", "Precio", "Subtotal"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, l := range sum.Lines {
		qty := l.Quantity()
		row := []interface{}{l.Name, qty, l.Price, int64(qty) * l.Price}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	cell, _ := excelize.CoordinatesToCellName(1, len(sum.Lines)+2)
	if err := sw.SetRow(cell, []interface{}{"Total", nil, nil, sum.Amount()}); err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
