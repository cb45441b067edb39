package preview

// Response is the body of GET /preview/{id}/.
// Either Error is set, or Columns and Rows are (with Stats optional).
type Response struct {
	Error    string
	HasError bool
	Stats    []ColumnSummary
	HasStats bool
	Columns  []string
	Rows     []Row
}

// ColumnSummary pairs a column with its statistics, in the order the server sent them
type ColumnSummary struct {
	Column string
	Stats  ColumnStats
}

// ColumnStats holds the six pre-formatted statistics of one column.
// The client never computes them; values are shown as received.
type ColumnStats struct {
	Mean    string
	Median  string
	StdDev  string
	Min     string
	Max     string
	Missing string
}

// Field names one of the six statistics
type Field int

const (
	FieldMean Field = iota
	FieldMedian
	FieldStdDev
	FieldMin
	FieldMax
	FieldMissing
)

// JSON keys of the statistics object. "écart-type" is the only accepted
// spelling for the standard deviation.
var fieldKeys = [...]string{
	FieldMean:    "moyenne",
	FieldMedian:  "médiane",
	FieldStdDev:  "écart-type",
	FieldMin:     "min",
	FieldMax:     "max",
	FieldMissing: "valeurs_manquantes",
}

// Fields returns the statistics in display order
func Fields() []Field {
	return []Field{FieldMean, FieldMedian, FieldStdDev, FieldMin, FieldMax, FieldMissing}
}

// Key returns the JSON key of the field
func (f Field) Key() string {
	return fieldKeys[f]
}

// Value returns the field's text
func (s ColumnStats) Value(f Field) string {
	switch f {
	case FieldMean:
		return s.Mean
	case FieldMedian:
		return s.Median
	case FieldStdDev:
		return s.StdDev
	case FieldMin:
		return s.Min
	case FieldMax:
		return s.Max
	case FieldMissing:
		return s.Missing
	}
	return ""
}

func (s *ColumnStats) set(f Field, v string) {
	switch f {
	case FieldMean:
		s.Mean = v
	case FieldMedian:
		s.Median = v
	case FieldStdDev:
		s.StdDev = v
	case FieldMin:
		s.Min = v
	case FieldMax:
		s.Max = v
	case FieldMissing:
		s.Missing = v
	}
}

// Cell is an opaque value of a data row
type Cell struct {
	text    string
	present bool
}

// NewCell builds a cell holding text
func NewCell(text string) Cell {
	return Cell{text: text, present: true}
}

// Text is the verbatim rendering of the value
func (c Cell) Text() string { return c.text }

// Present reports whether the row had the key at all
func (c Cell) Present() bool { return c.present }

// Row maps column names to cells
type Row map[string]Cell

// Text returns the text of column col, empty when the row lacks it
func (r Row) Text(col string) string {
	return r[col].Text()
}
