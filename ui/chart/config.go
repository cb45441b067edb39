package chart

import (
	"encoding/json"
	"fmt"
	"math"

	"datapreview/internal/i18n"
)

const (
	meanColor   = "rgba(54, 162, 235, %s)"
	medianColor = "rgba(255, 99, 132, %s)"
)

// Value is a bar height; NaN and infinities encode as null, which Chart.js
// leaves as a gap
type Value float64

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Dataset is one bar series
type Dataset struct {
	Label           string  `json:"label"`
	Data            []Value `json:"data"`
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	BorderWidth     int     `json:"borderWidth"`
}

// Data holds the labels and the series
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type legend struct {
	Position string `json:"position"`
}

type plugins struct {
	Title  title  `json:"title"`
	Legend legend `json:"legend"`
}

type axis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

type scales struct {
	Y axis `json:"y"`
}

type animation struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
}

// Options mirrors the Chart.js options block
type Options struct {
	Responsive          bool      `json:"responsive"`
	MaintainAspectRatio bool      `json:"maintainAspectRatio"`
	Scales              scales    `json:"scales"`
	Plugins             plugins   `json:"plugins"`
	Animation           animation `json:"animation"`
}

// ChartConfig is the Chart.js configuration of the statistics chart
type ChartConfig struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Config builds the grouped bar chart configuration for s
func Config(s *Series, loc *i18n.Localizer) ChartConfig {
	return ChartConfig{
		Type: "bar",
		Data: Data{
			Labels: nonNil(s.Labels),
			Datasets: []Dataset{
				dataset(loc.T(i18n.Mean), s.Means, meanColor),
				dataset(loc.T(i18n.Median), s.Medians, medianColor),
			},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			Scales:              scales{Y: axis{BeginAtZero: true}},
			Plugins: plugins{
				Title:  title{Display: true, Text: loc.T(i18n.ChartTitle)},
				Legend: legend{Position: "top"},
			},
			Animation: animation{Duration: 1000, Easing: "easeInOutQuart"},
		},
	}
}

func dataset(label string, values []float64, color string) Dataset {
	data := make([]Value, len(values))
	for i, v := range values {
		data[i] = Value(v)
	}
	return Dataset{
		Label:           label,
		Data:            data,
		BackgroundColor: fmt.Sprintf(color, "0.5"),
		BorderColor:     fmt.Sprintf(color, "1"),
		BorderWidth:     1,
	}
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
