package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"datapreview/internal"
	"datapreview/internal/errors"
	"datapreview/internal/i18n"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var logger = internal.NewComponentLogger("Chart")

var (
	meanFill   = color.RGBA{R: 54, G: 162, B: 235, A: 128}
	meanLine   = color.RGBA{R: 54, G: 162, B: 235, A: 255}
	medianFill = color.RGBA{R: 255, G: 99, B: 132, A: 128}
	medianLine = color.RGBA{R: 255, G: 99, B: 132, A: 255}
)

const (
	barWidth    = vg.Length(14)
	imageHeight = 4 * vg.Inch
)

// RenderPNG draws s as a grouped bar chart, mean and median side by side for
// each label. Values that are not finite are drawn as empty bars.
func RenderPNG(s *Series, w io.Writer, loc *i18n.Localizer) error {
	if s == nil || s.Len() == 0 {
		return errors.InvalidInput("no statistics to chart")
	}

	p := plot.New()
	p.Title.Text = loc.T(i18n.ChartTitle)
	p.Y.Min = 0
	p.Legend.Top = true

	means, err := bars(s.Means, meanFill, meanLine, -barWidth/2)
	if err != nil {
		return err
	}
	medians, err := bars(s.Medians, medianFill, medianLine, barWidth/2)
	if err != nil {
		return err
	}

	// headroom so the legend does not cover the tallest bar
	if top := math.Max(floats.Max(means.Values), floats.Max(medians.Values)); top > 0 {
		p.Y.Max = top * 1.15
	}

	p.Add(means, medians, plotter.NewGrid())
	p.Legend.Add(loc.T(i18n.Mean), means)
	p.Legend.Add(loc.T(i18n.Median), medians)
	p.NominalX(s.Labels...)

	width := vg.Length(s.Len())*3*barWidth + 2*vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}

	writer, err := p.WriterTo(width, imageHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func bars(values []float64, fill, line color.Color, offset vg.Length) (*plotter.BarChart, error) {
	heights := make(plotter.Values, len(values))
	copy(heights, values)
	for i, v := range heights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			logger.Warn("Value %d is not a number, drawn as 0", i)
			heights[i] = 0
		}
	}

	b, err := plotter.NewBarChart(heights, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create bar chart: %w", err)
	}
	b.Color = fill
	b.LineStyle.Color = line
	b.LineStyle.Width = vg.Length(1)
	b.Offset = offset
	return b, nil
}
