package httpserver

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/maurofranchi/gamegear/internal/domain"
)

// handleExportXLSX streams the full catalog as a spreadsheet, one row per
// product with both list and discounted price.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Catalog"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "xlsx", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Category", "Price", "Discount %", "Discounted Price", "Stock", "Availability", "Rating", "Reviews", "New"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, p := range s.catalog.All() {
		values := []any{
			p.ID, p.Name, string(p.Category), p.Price, p.DiscountPercent,
			domain.FormatPrice(p.DiscountedUnitPrice()), p.Stock,
			string(p.Availability()), p.Rating, p.Reviews, p.IsNew,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "catalog.xlsx"))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export")
	}
}
