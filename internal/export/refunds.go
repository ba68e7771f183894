package export

import (
	"fmt"
	"io"
	"time"

	"staybook/internal/models"

	"github.com/xuri/excelize/v2"
)

// RefundSheet is the worksheet name of the refund report.
const RefundSheet = "Refunds"

var refundHeaders = []string{
	"Reservation", "Group", "Unit", "Guest", "Email", "Check-in", "Check-out",
	"Amount", "Currency", "Payment session", "Notes", "Updated",
}

// WriteRefundReport пишет в w xlsx со списком броней, ожидающих ручного возврата.
// unitNames maps unit ids to display names; unknown ids fall back to the id.
func WriteRefundReport(w io.Writer, reservations []*models.Reservation, unitNames map[int64]string, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RefundSheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Заголовок отчёта
	_ = f.SetCellValue(RefundSheet, "A1", fmt.Sprintf("Manual refunds, generated %s", generatedAt.UTC().Format(time.RFC3339)))
	lastCol, _ := excelize.ColumnNumberToName(len(refundHeaders))
	_ = f.MergeCell(RefundSheet, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(RefundSheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FCE4D6"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range refundHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(RefundSheet, cell, h)
		_ = f.SetCellStyle(RefundSheet, cell, cell, headerStyle)
	}

	for i, r := range reservations {
		row := i + 3
		unit, ok := unitNames[r.UnitID]
		if !ok {
			unit = fmt.Sprintf("#%d", r.UnitID)
		}
		values := []any{
			r.ID, r.GroupReference, unit, r.GuestName, r.GuestEmail,
			r.CheckIn.String(), r.CheckOut.String(),
			float64(r.TotalPrice) / 100, r.Currency, r.PaymentSessionID, r.Notes,
			r.UpdatedAt.UTC().Format(time.RFC3339),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(RefundSheet, start, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(RefundSheet, "A", "A", 12)
	_ = f.SetColWidth(RefundSheet, "B", "E", 25)
	_ = f.SetColWidth(RefundSheet, "F", "J", 15)
	_ = f.SetColWidth(RefundSheet, "K", "K", 60)
	_ = f.SetColWidth(RefundSheet, "L", "L", 22)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
