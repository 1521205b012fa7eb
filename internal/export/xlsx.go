// Package export renders leaderboards as downloadable spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"clubhub/internal/models"
	"clubhub/internal/ranking"
)

const sheetName = "TimeAttack"

// SessionFilename builds the download name for a session export.
func SessionFilename(session *models.Session) string {
	return fmt.Sprintf("TimeAttack_%s_%s-%s.xlsx",
		session.MapName, session.StartDate, session.EndDate)
}

// SessionWorkbook renders the merged session ranking as an XLSX file:
// one row per roster member, unranked members exported with "-".
func SessionWorkbook(rows []ranking.TimeRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Rank", "Username", "Time"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		var rank, lapTime interface{} = "-", "-"
		if r.TimeMillis != nil {
			rank = r.Rank
			lapTime = ranking.FormatLapTime(*r.TimeMillis)
		}

		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{rank, r.Username, lapTime}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
