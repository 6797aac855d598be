package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

// ExportXLSX renders an analysis result as a spreadsheet: one summary sheet
// and one row per ranked opportunity.
func ExportXLSX(result *models.AnalysisResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Recommendations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Summary", result.Summary},
		{"Skills", strings.Join(result.Skills, ", ")},
		{},
		{"Rank", "Title", "Organization", "Match Score", "Required Skills", "Location", "Duration", "Apply URL", "Recommended"},
	}
	for i, o := range result.Opportunities {
		rows = append(rows, []any{
			i + 1, o.Title, o.Organization, o.MatchScore,
			strings.Join(o.RequiredSkills, ", "), o.Location, o.Duration, o.ApplyURL, o.Recommended,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
