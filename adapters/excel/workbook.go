package excel

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"datapreview/domain/preview"
	"datapreview/internal/i18n"

	"github.com/xuri/excelize/v2"
)

// WorkbookWriter writes a fetched preview as a spreadsheet: the data table on
// the first sheet and, when present, the statistics with a mean vs median
// chart on the second.
type WorkbookWriter struct {
	loc *i18n.Localizer
}

// NewWorkbookWriter creates a writer using loc for sheet names and headers
func NewWorkbookWriter(loc *i18n.Localizer) *WorkbookWriter {
	return &WorkbookWriter{loc: loc}
}

// Write renders view into w as an xlsx file
func (ww *WorkbookWriter) Write(w io.Writer, view preview.View) error {
	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	dataSheet := ww.loc.T(i18n.DataSheet)
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}
	if err := writeTable(f, dataSheet, view.Table.Headers, view.Table.Rows); err != nil {
		return fmt.Errorf("failed to write data sheet: %w", err)
	}

	if view.HasStats && len(view.Cards) > 0 {
		if err := ww.writeStats(f, view.Cards); err != nil {
			return fmt.Errorf("failed to write statistics sheet: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	log.Printf("[Excel] Workbook written in %.2fms (%d rows, %d stats columns)",
		float64(time.Since(start).Nanoseconds())/1e6, len(view.Table.Rows), len(view.Cards))
	return nil
}

func (ww *WorkbookWriter) writeStats(f *excelize.File, cards []preview.StatsCard) error {
	sheet := ww.loc.T(i18n.StatsSheet)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{ww.loc.T(i18n.Column)}
	for _, field := range preview.Fields() {
		headers = append(headers, ww.loc.T(i18n.FieldLabel(field)))
	}
	rows := make([][]string, len(cards))
	for i, card := range cards {
		row := []string{card.Column}
		for _, sf := range card.Fields {
			row = append(row, sf.Value)
		}
		rows[i] = row
	}
	if err := writeTable(f, sheet, headers, rows); err != nil {
		return err
	}

	last := len(cards) + 1
	ref := "'" + strings.ReplaceAll(sheet, "'", "''") + "'!"
	series := func(col string) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("%s$%s$1", ref, col),
			Categories: fmt.Sprintf("%s$A$2:$A$%d", ref, last),
			Values:     fmt.Sprintf("%s$%s$2:$%s$%d", ref, col, col, last),
		}
	}

	anchor, _ := excelize.CoordinatesToCellName(len(headers)+2, 1)
	return f.AddChart(sheet, anchor, &excelize.Chart{
		Type:   excelize.Col,
		Series: []excelize.ChartSeries{series("B"), series("C")},
		Title:  []excelize.RichTextRun{{Text: ww.loc.T(i18n.ChartTitle)}},
		Legend: excelize.ChartLegend{Position: "top"},
	})
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue stores plain decimal text as a number so the sheet can compute on it
func cellValue(text string) interface{} {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || strings.ContainsAny(text, "xX_") {
		return text
	}
	return n
}
