package report

import (
	"obracheck/internal/attendance"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Asistencia"

// RenderXLSX writes the roster to a single-sheet workbook followed by a
// totals block.
func RenderXLSX(meta Meta, roster attendance.Roster) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Registro de asistencia"},
		{"Obra", meta.SiteName, "ID", meta.SiteID},
		{"Fecha", meta.Date},
		{},
		{"#", "Trabajador", "CI", "Estado"},
	}
	headerRow := len(rows)
	for i, rec := range roster {
		rows = append(rows, []interface{}{i + 1, rec.WorkerName, rec.CI, rec.Status.Label()})
	}

	rows = append(rows, []interface{}{})
	totalsRow := len(rows) + 1
	counts := roster.CountByStatus()
	rows = append(rows, []interface{}{"Total", len(roster)})
	for _, s := range attendance.Statuses {
		rows = append(rows, []interface{}{s.Label(), counts[s]})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for _, r := range []int{1, headerRow, totalsRow} {
		from, _ := excelize.CoordinatesToCellName(1, r)
		to, _ := excelize.CoordinatesToCellName(4, r)
		if err := f.SetCellStyle(sheetName, from, to, bold); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 36); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "C", "D", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
