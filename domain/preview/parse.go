package preview

import (
	"math"
	"strconv"
	"strings"

	"datapreview/internal/errors"

	"github.com/tidwall/gjson"
)

// Parse decodes a preview body. gjson keeps the key order of the stats
// object, which encoding/json maps would lose.
func Parse(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Malformed("preview body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.Malformed("preview body is not a JSON object")
	}

	resp := &Response{}
	if e := root.Get("error"); truthy(e) {
		resp.Error = text(e)
		resp.HasError = true
		return resp, nil
	}

	columns := root.Get("columns")
	if !columns.IsArray() {
		return nil, errors.Malformed("preview body has no columns array")
	}
	data := root.Get("data")
	if !data.IsArray() {
		return nil, errors.Malformed("preview body has no data array")
	}

	for _, c := range columns.Array() {
		resp.Columns = append(resp.Columns, text(c))
	}
	for _, item := range data.Array() {
		resp.Rows = append(resp.Rows, parseRow(item))
	}

	stats := root.Get("stats")
	switch {
	case !truthy(stats):
	case stats.IsObject():
		resp.HasStats = true
		resp.Stats = parseStats(stats)
	default:
		return nil, errors.Malformed("preview stats is not an object")
	}

	return resp, nil
}

func parseRow(item gjson.Result) Row {
	row := Row{}
	if !item.IsObject() {
		return row
	}
	item.ForEach(func(key, value gjson.Result) bool {
		row[key.String()] = NewCell(text(value))
		return true
	})
	return row
}

func parseStats(stats gjson.Result) []ColumnSummary {
	var out []ColumnSummary
	stats.ForEach(func(key, value gjson.Result) bool {
		summary := ColumnSummary{Column: key.String()}
		values := map[string]gjson.Result{}
		value.ForEach(func(k, v gjson.Result) bool {
			values[k.String()] = v
			return true
		})
		for _, f := range Fields() {
			summary.Stats.set(f, text(values[f.Key()]))
		}
		out = append(out, summary)
		return true
	})
	return out
}

// text renders a JSON value the way it is shown in a cell: strings
// unquoted, null and missing values empty, numbers in their shortest form
// (1.0 shows as 1), everything else as its literal.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Null:
		return ""
	case gjson.Number:
		return formatNumber(r.Num)
	default:
		return r.Raw
	}
}

// formatNumber matches the browser's number to string conversion: plain
// decimals between 1e-6 and 1e21, exponent notation outside.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// truthy follows the server contract where an empty error string, false,
// 0 or null mean "not set".
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	}
	return true
}
