// Package chart draws the mean and median of a statistics table as a grouped
// bar chart, either as a Chart.js configuration injected into the page or as
// a PNG image.
package chart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"datapreview/domain/preview"
)

// Series is what a statistics table contributes to the chart: one label per
// body row with its mean and median. Values that do not parse are NaN.
type Series struct {
	Labels  []string
	Means   []float64
	Medians []float64
}

// Len returns the number of rows
func (s *Series) Len() int {
	return len(s.Labels)
}

// Add appends one row
func (s *Series) Add(label string, mean, median float64) {
	s.Labels = append(s.Labels, label)
	s.Means = append(s.Means, mean)
	s.Medians = append(s.Medians, median)
}

// ParseFloat reads the longest leading decimal number of s, the way browsers
// parse numeric cell text: "12.5 kg" is 12.5, "1e3x" is 1000, "abc" is NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	// exponent only counts when digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// out of range: ParseFloat already returns ±Inf or 0
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FromView builds the series of a rendered preview's stats cards without
// going through the page
func FromView(view preview.View) *Series {
	s := &Series{}
	for _, card := range view.Cards {
		s.Add(card.Column, ParseFloat(fieldValue(card, preview.FieldMean)), ParseFloat(fieldValue(card, preview.FieldMedian)))
	}
	return s
}

func fieldValue(card preview.StatsCard, f preview.Field) string {
	for _, sf := range card.Fields {
		if sf.Field == f {
			return sf.Value
		}
	}
	return ""
}
