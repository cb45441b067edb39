package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strings"

	"datapreview/internal/i18n"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector finds the statistics table a chart is drawn from
const TableSelector = ".table-responsive table"

// CanvasID is the id of the injected canvas
const CanvasID = "statsChart"

// Extract reads the first statistics table of doc: the label from the first
// cell of each body row, the mean from the second and the median from the
// third. ok is false when the page has no statistics table.
func Extract(doc *goquery.Document) (*Series, bool) {
	table := doc.Find(TableSelector).First()
	if table.Length() == 0 {
		return nil, false
	}
	return extractTable(table), true
}

func extractTable(table *goquery.Selection) *Series {
	s := &Series{}
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < 3 {
			logger.Debug("Row with %d cells, expected at least 3", cells.Length())
		}
		s.Add(
			strings.TrimSpace(cells.Eq(0).Text()),
			cellValue(cells, 1),
			cellValue(cells, 2),
		)
	})
	return s
}

func cellValue(cells *goquery.Selection, i int) float64 {
	if i >= cells.Length() {
		return math.NaN()
	}
	return ParseFloat(cells.Eq(i).Text())
}

// Inject appends the chart container and its canvas after the first
// statistics table of doc. Pages without such a table are left untouched.
func Inject(doc *goquery.Document, loc *i18n.Localizer) (bool, error) {
	table := doc.Find(TableSelector).First()
	if table.Length() == 0 {
		return false, nil
	}

	cfg, err := json.Marshal(Config(extractTable(table), loc))
	if err != nil {
		return false, fmt.Errorf("failed to encode chart config: %w", err)
	}

	table.Parent().AppendHtml(fmt.Sprintf(
		`<div class="charts-container mt-4" style="height: 300px"><canvas id="%s" data-chart="%s"></canvas></div>`,
		CanvasID, html.EscapeString(string(cfg)),
	))
	return true, nil
}

// InitCharts runs Inject over a rendered page. A page without a statistics
// table comes back unchanged.
func InitCharts(page []byte, loc *i18n.Localizer) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	injected, err := Inject(doc, loc)
	if err != nil {
		return nil, err
	}
	if !injected {
		return page, nil
	}

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize page: %w", err)
	}
	return []byte(out), nil
}
