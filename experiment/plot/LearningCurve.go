// Package plot renders experiment data as standalone HTML charts
package plot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LearningCurve renders the episodic returns of an experiment as a
// line chart in a standalone HTML file. Alongside the raw returns, a
// moving average over the argument window is drawn to make the
// learning trend visible. A window < 2 disables the moving average
// series.
func LearningCurve(filename, title string, returns []float64,
	window int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Episode",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Return",
		}),
	)

	episodes := make([]string, len(returns))
	for i := range returns {
		episodes[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(episodes)

	items := make([]opts.LineData, 0, len(returns))
	for _, r := range returns {
		items = append(items, opts.LineData{Value: r})
	}
	line.AddSeries("return", items)

	if window >= 2 && len(returns) >= window {
		smoothed := movingAverage(returns, window)
		smoothedItems := make([]opts.LineData, 0, len(smoothed))
		for _, r := range smoothed {
			smoothedItems = append(smoothedItems, opts.LineData{Value: r})
		}
		line.AddSeries(fmt.Sprintf("moving average (%d)", window),
			smoothedItems)
	}

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("learningCurve: could not create file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("learningCurve: could not render chart: %v", err)
	}
	return nil
}

// movingAverage returns the trailing moving average of data over the
// argument window. The first window-1 entries average only the data
// seen so far.
func movingAverage(data []float64, window int) []float64 {
	out := make([]float64, len(data))

	var sum float64
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
			out[i] = sum / float64(window)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}
