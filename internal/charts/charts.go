// Package charts renders the analytics aggregates as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"finanza/internal/core"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the expense breakdown as a pie chart. Categories below
// one percent of the total are omitted so the labels stay readable. Returns
// nil when there is nothing to draw.
func (g *Generator) CategoryPie(breakdown []core.CategoryAmount) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, cat := range breakdown {
		total += cat.Value
	}
	if total <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, cat := range breakdown {
		percentage := (cat.Value / total) * 100
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", cat.Name, core.FormatDisplay(cat.Value), percentage),
			Value: cat.Value,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}

	return buffer.Bytes(), nil
}

// MonthlyBars renders income and expense totals per month as paired bars,
// chronological left to right. Returns nil when there is nothing to draw.
func (g *Generator) MonthlyBars(months []core.MonthAmount) ([]byte, error) {
	if len(months) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(months)*2)
	for _, m := range months {
		label := fmt.Sprintf("%04d-%02d", m.Year, m.Month)
		bars = append(bars,
			chart.Value{
				Label: label + " in",
				Value: m.Income,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					FillColor:   chart.ColorGreen.WithAlpha(180),
					FontSize:    12,
					FontColor:   chart.ColorBlack,
				},
			},
			chart.Value{
				Label: label + " out",
				Value: m.Expense,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					FillColor:   chart.ColorRed.WithAlpha(180),
					FontSize:    12,
					FontColor:   chart.ColorBlack,
				},
			},
		)
	}

	graph := chart.BarChart{
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render monthly bars: %w", err)
	}

	return buffer.Bytes(), nil
}
