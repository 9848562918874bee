package services

import (
	"fmt"
	"io"

	"charlesfind/safaritracker/internal/models/dtos"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Sightings"

var exportHeaders = []string{
	"Observed At (UTC)", "Species", "Status", "Reporter", "Notes", "Location", "Latitude", "Longitude", "ID",
}

var exportColumnWidths = []float64{20, 18, 10, 22, 40, 30, 12, 12, 38}

// WriteSightingsWorkbook writes items as an xlsx workbook with a bold
// header row and one row per sighting.
func WriteSightingsWorkbook(w io.Writer, items []dtos.SightingItem) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F3E9D2"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(exportSheetName, name, name, exportColumnWidths[col]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, item := range items {
		row := []any{
			item.ObservedAt.UTC().Format("2006-01-02 15:04:05"),
			item.Species,
			item.Status,
			item.ReporterFirstName + " " + item.ReporterLastName,
			derefString(item.Notes),
			derefString(item.LocationDescription),
			item.Latitude,
			item.Longitude,
			item.ID,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
