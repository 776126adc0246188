// Package plot renders density sweep results as PNG charts.
package plot

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"forestfire/internal/montecarlo"
)

// Options controls the chart appearance. Zero values pick defaults.
type Options struct {
	Title  string
	Width  int
	Height int
}

var curveColor = drawing.Color{R: 229, G: 57, B: 33, A: 255}

// ThetaCurve writes θ(d) as a PNG line chart. Points without data are
// skipped; at least two plotted points are required.
func ThetaCurve(w io.Writer, points []montecarlo.CurvePoint, opts Options) error {
	var xs, ys []float64
	for _, pt := range points {
		if !pt.Valid {
			continue
		}
		xs = append(xs, pt.Density)
		ys = append(ys, pt.Theta)
	}
	if len(xs) < 2 {
		return errors.NotValidf("theta curve with %d plottable points", len(xs))
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "tree density",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: unitTicks(),
		},
		YAxis: chart.YAxis{
			Name:  "percolation probability",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: unitTicks(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "theta",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: curveColor,
					StrokeWidth: 3.0,
					DotColor:    curveColor,
					DotWidth:    3.0,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.Annotate(err, "render theta curve")
	}
	return nil
}

func unitTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		v := float64(i) / 10
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	return ticks
}
