// Package reports renders spreadsheet exports.
package reports

import (
	"fmt"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/xuri/excelize/v2"
)

// AppointmentSheet is the name of the sheet holding appointment rows.
const AppointmentSheet = "Appointments"

// AppointmentHeader is the first row of an appointments export.
var AppointmentHeader = []string{
	"ID",
	"Customer ID",
	"Doctor ID",
	"Type",
	"Note",
	"Scheduled At",
	"Status",
	"Created At",
}

var appointmentColumnWidths = []float64{8, 12, 12, 16, 40, 20, 14, 20}

// AppointmentsWorkbook returns an xlsx workbook with one row per appointment.
func AppointmentsWorkbook(appointments []models.Appointment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AppointmentSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(AppointmentSheet, "A1", &AppointmentHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(AppointmentHeader), 1)
	if err := f.SetCellStyle(AppointmentSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for col, width := range appointmentColumnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(AppointmentSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, a := range appointments {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			a.ID,
			a.CustomerID,
			a.DoctorID,
			a.Type,
			a.Note,
			a.ScheduledAt.Format(time.DateTime),
			string(a.Status),
			a.CreatedAt.Format(time.DateTime),
		}
		if err := f.SetSheetRow(AppointmentSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
