package export

import (
	"fmt"

	"github.com/ternarybob/indago/internal/models"
	"github.com/xuri/excelize/v2"
)

const leadsSheet = "Leads"

func writeXLSX(profiles []models.CandidateProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(leadsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(leadsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i := range profiles {
		row := profileRow(&profiles[i])
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(leadsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// Widen the name, URL and email columns
	_ = f.SetColWidth(leadsSheet, "A", "A", 22)
	_ = f.SetColWidth(leadsSheet, "B", "C", 26)
	_ = f.SetColWidth(leadsSheet, "E", "F", 40)
	_ = f.SetColWidth(leadsSheet, "I", "I", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
