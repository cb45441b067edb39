package preview

// StatField is one line of a stats card
type StatField struct {
	Field Field
	Value string
}

// StatsCard is the summary card of one column
type StatsCard struct {
	Column string
	Fields []StatField
}

// Table is the header and projected body of the data table
type Table struct {
	Headers []string
	Rows    [][]string
}

// View is what the preview container shows for a successful response
type View struct {
	HasStats bool
	Cards    []StatsCard
	Table    Table
}

// NewView projects a response onto the cards and table it renders as
func NewView(resp *Response) View {
	v := View{HasStats: resp.HasStats}

	for _, summary := range resp.Stats {
		card := StatsCard{Column: summary.Column}
		for _, f := range Fields() {
			card.Fields = append(card.Fields, StatField{Field: f, Value: summary.Stats.Value(f)})
		}
		v.Cards = append(v.Cards, card)
	}

	v.Table.Headers = append([]string(nil), resp.Columns...)
	for _, row := range resp.Rows {
		cells := make([]string, len(resp.Columns))
		for i, col := range resp.Columns {
			cells[i] = row.Text(col)
		}
		v.Table.Rows = append(v.Table.Rows, cells)
	}

	return v
}
