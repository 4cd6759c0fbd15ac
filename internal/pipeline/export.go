package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"wareneingang/internal"
)

// ExportRowsToXLSX writes the flattened review rows to the first sheet and,
// when present, the ranked work-order suggestions to a second one.
func ExportRowsToXLSX(rows []internal.ResultExportRow, suggestions []internal.JobSuggestion, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"line_no", "source", "article_number", "description", "quantity", "unit",
		"unit_price", "line_total",
		"material_id", "material_name", "confidence", "accepted",
		"suggestion2_name", "suggestion2_confidence",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.LineNo)
		set(2, row.Source)
		set(3, derefString(row.ArticleNumber))
		set(4, row.Description)
		set(5, row.Quantity)
		set(6, row.Unit)
		set(7, row.UnitPrice)
		set(8, row.LineTotal)
		set(9, derefInt(row.MaterialID))
		set(10, derefString(row.MaterialName))
		set(11, row.Confidence)
		set(12, row.Accepted)
		set(13, derefString(row.Suggestion2Name))
		set(14, derefFloat(row.Suggestion2Confidence))
	}

	if len(suggestions) > 0 {
		if err := writeSuggestionSheet(f, suggestions); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeSuggestionSheet(f *excelize.File, suggestions []internal.JobSuggestion) error {
	const sheet = "work_orders"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"work_order_id", "label", "score", "matched_lines"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, sg := range suggestions {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, sg.WorkOrderID)
		set(2, sg.Label)
		set(3, sg.Score)
		set(4, len(sg.MatchedItems))
	}
	return nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
