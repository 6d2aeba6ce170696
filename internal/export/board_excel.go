package export

import (
	"fmt"
	"io"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	BoardSheet   = "Pipeline"
)

// WriteBoardXLSX writes the board as a workbook: a summary sheet with the
// count per stage and one row per application in stage order.
func WriteBoardXLSX(w io.Writer, jobTitle string, columns []pipeline.Column, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SummarySheet)
	if _, err := f.NewSheet(BoardSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := writeSummary(f, headerStyle, jobTitle, columns, generatedAt); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRows(f, headerStyle, columns); err != nil {
		return fmt.Errorf("failed to create pipeline sheet: %w", err)
	}

	return f.Write(w)
}

func writeSummary(f *excelize.File, headerStyle int, jobTitle string, columns []pipeline.Column, generatedAt time.Time) error {
	sheet := SummarySheet
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 40)

	rows := [][]any{
		{"Job", jobTitle},
		{"Generated", generatedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Stage", "Candidates"},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	f.SetCellStyle(sheet, "A4", "B4", headerStyle)

	total := 0
	r := len(rows) + 1
	for _, col := range columns {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), col.Stage)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), len(col.Cards))
		total += len(col.Cards)
		r++
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", r), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", r), total)
	return nil
}

func writeRows(f *excelize.File, headerStyle int, columns []pipeline.Column) error {
	sheet := BoardSheet
	headers := []any{"Stage", "Candidate", "Email", "Score", "Recommendation", "Resume", "Applied At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	f.SetColWidth(sheet, "A", "C", 28)
	f.SetColWidth(sheet, "D", "F", 14)
	f.SetColWidth(sheet, "G", "G", 20)

	r := 2
	for _, col := range columns {
		for _, card := range col.Cards {
			score := any("")
			if card.Score != nil {
				score = *card.Score
			}
			resume := "No"
			if card.HasResume {
				resume = "Yes"
			}
			row := []any{col.Stage, card.CandidateName, card.CandidateEmail, score, card.Recommendation, resume, card.AppliedAt.Format("2006-01-02 15:04")}
			cell, _ := excelize.CoordinatesToCellName(1, r)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
			r++
		}
	}
	return f.AutoFilter(sheet, fmt.Sprintf("A1:G%d", max(r-1, 1)), nil)
}
