package preview

import (
	"testing"

	"datapreview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleBody = `{
	"columns": ["A"],
	"data": [{"A": "1"}],
	"stats": {"A": {"moyenne": "1", "médiane": "1", "écart-type": "0", "min": "1", "max": "1", "valeurs_manquantes": "0"}}
}`

func TestParseExample(t *testing.T) {
	resp, err := Parse([]byte(exampleBody))
	require.NoError(t, err)

	assert.False(t, resp.HasError)
	assert.True(t, resp.HasStats)
	assert.Equal(t, []string{"A"}, resp.Columns)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "1", resp.Rows[0].Text("A"))
	require.Len(t, resp.Stats, 1)
	assert.Equal(t, "A", resp.Stats[0].Column)
	assert.Equal(t, ColumnStats{Mean: "1", Median: "1", StdDev: "0", Min: "1", Max: "1", Missing: "0"}, resp.Stats[0].Stats)
}

func TestParseError(t *testing.T) {
	resp, err := Parse([]byte(`{"error": "Fichier introuvable"}`))
	require.NoError(t, err)

	assert.True(t, resp.HasError)
	assert.Equal(t, "Fichier introuvable", resp.Error)
	assert.Empty(t, resp.Columns)
}

func TestParseErrorWinsOverData(t *testing.T) {
	resp, err := Parse([]byte(`{"error": "boom", "columns": ["A"], "data": []}`))
	require.NoError(t, err)
	assert.True(t, resp.HasError)
	assert.Empty(t, resp.Columns)
}

func TestParseFalsyErrorIgnored(t *testing.T) {
	for _, body := range []string{
		`{"error": "", "columns": [], "data": []}`,
		`{"error": null, "columns": [], "data": []}`,
		`{"error": false, "columns": [], "data": []}`,
	} {
		resp, err := Parse([]byte(body))
		require.NoError(t, err, body)
		assert.False(t, resp.HasError, body)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>502 Bad Gateway</html>`,
		"array":          `[1, 2]`,
		"no columns":     `{"data": []}`,
		"no data":        `{"columns": ["A"]}`,
		"columns string": `{"columns": "A", "data": []}`,
		"stats string":   `{"columns": [], "data": [], "stats": "x"}`,
		"empty":          ``,
	}
	for name, body := range cases {
		_, err := Parse([]byte(body))
		require.Error(t, err, name)
		assert.Equal(t, errors.CodeMalformedResponse, errors.GetCode(err), name)
	}
}

func TestParseKeepsStatsOrder(t *testing.T) {
	body := `{"columns": [], "data": [], "stats": {
		"zeta": {"moyenne": 1},
		"alpha": {"moyenne": 2},
		"mid": {"moyenne": 3}
	}}`
	resp, err := Parse([]byte(body))
	require.NoError(t, err)

	var order []string
	for _, s := range resp.Stats {
		order = append(order, s.Column)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, order)
}

func TestParseStdDevCanonicalKey(t *testing.T) {
	body := `{"columns": [], "data": [], "stats": {
		"a": {"écart-type": "2.5"},
		"b": {"écart_type": "9.9"}
	}}`
	resp, err := Parse([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "2.5", resp.Stats[0].Stats.StdDev)
	assert.Equal(t, "", resp.Stats[1].Stats.StdDev)
}

func TestParseCellRendering(t *testing.T) {
	body := `{"columns": ["s", "n", "b", "z", "o", "gone"], "data": [
		{"s": "texte", "n": 3.50, "b": true, "z": null, "o": {"k": 1}}
	]}`
	resp, err := Parse([]byte(body))
	require.NoError(t, err)

	row := resp.Rows[0]
	assert.Equal(t, "texte", row.Text("s"))
	assert.Equal(t, "3.5", row.Text("n"))
	assert.Equal(t, "true", row.Text("b"))
	assert.Equal(t, "", row.Text("z"))
	assert.True(t, row["z"].Present())
	assert.Equal(t, `{"k": 1}`, row.Text("o"))
	assert.Equal(t, "", row.Text("gone"))
	assert.False(t, row["gone"].Present())
}

func TestParseNumberText(t *testing.T) {
	body := `{"columns": ["a", "b", "c", "d", "e", "f", "g"], "data": [
		{"a": 1.0, "b": -0.0, "c": 1200, "d": 0.000001, "e": 1e-7, "f": 1e21, "g": 2.50e2}
	]}`
	resp, err := Parse([]byte(body))
	require.NoError(t, err)

	row := resp.Rows[0]
	assert.Equal(t, "1", row.Text("a"))
	assert.Equal(t, "0", row.Text("b"))
	assert.Equal(t, "1200", row.Text("c"))
	assert.Equal(t, "0.000001", row.Text("d"))
	assert.Equal(t, "1e-7", row.Text("e"))
	assert.Equal(t, "1e+21", row.Text("f"))
	assert.Equal(t, "250", row.Text("g"))
}

func TestParseNonObjectRow(t *testing.T) {
	resp, err := Parse([]byte(`{"columns": ["A"], "data": [42]}`))
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "", resp.Rows[0].Text("A"))
}

func TestParseColumnWithDots(t *testing.T) {
	resp, err := Parse([]byte(`{"columns": ["prix.ht"], "data": [{"prix.ht": 10}]}`))
	require.NoError(t, err)
	assert.Equal(t, "10", resp.Rows[0].Text("prix.ht"))
}
