package render

import (
	"time"

	"solar-wind-forecast/internal/models"
)

const (
	PowerAxisID    = "power"
	PowerAxisTitle = "Power (W/m²)"
	hourTickFormat = "MMM dd, h a"
)

// ChartSpec is a complete Chart.js configuration plus the revision the page uses to decide
// whether to rebuild. A new spec is built for every fetched forecast and is never mutated
// afterwards; the page destroys its Chart.js instance and creates a new one from it.
type ChartSpec struct {
	Revision int         `json:"revision"`
	Config   ChartConfig `json:"config"`
	// TooltipTitle names the field used as tooltip title; Chart.js callbacks cannot travel as JSON.
	TooltipTitle string `json:"tooltipTitle"`
}

type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
	Fill        bool      `json:"fill"`
	YAxisID     string    `json:"yAxisID"`
}

type ChartOptions struct {
	Responsive          bool            `json:"responsive"`
	MaintainAspectRatio bool            `json:"maintainAspectRatio"`
	Scales              map[string]Axis `json:"scales"`
}

type Axis struct {
	Type        string     `json:"type,omitempty"`
	Time        *TimeAxis  `json:"time,omitempty"`
	BeginAtZero bool       `json:"beginAtZero,omitempty"`
	Title       *AxisTitle `json:"title,omitempty"`
}

type TimeAxis struct {
	Unit           string            `json:"unit"`
	DisplayFormats map[string]string `json:"displayFormats"`
	TooltipFormat  string            `json:"tooltipFormat,omitempty"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

var datasetColors = map[models.SeriesID]string{
	models.SeriesSolar: "orange",
	models.SeriesWind:  "blue",
}

// BuildChart lays both series on one time axis sharing a single linear Y axis anchored at zero.
func BuildChart(series *models.ForecastSeries, derived models.DerivedPower, revision int) *ChartSpec {
	labels := make([]string, series.Len())
	for i, ts := range series.Timestamps {
		labels[i] = ts.Format(time.RFC3339)
	}

	datasets := make([]Dataset, 0, len(models.AllSeries))
	for _, id := range models.AllSeries {
		datasets = append(datasets, Dataset{
			Label:       SeriesTitle(id) + " Power (W/m²)",
			Data:        derived.Series(id),
			BorderColor: datasetColors[id],
			Fill:        false,
			YAxisID:     PowerAxisID,
		})
	}

	return &ChartSpec{
		Revision:     revision,
		TooltipTitle: "label",
		Config: ChartConfig{
			Type: "line",
			Data: ChartData{
				Labels:   labels,
				Datasets: datasets,
			},
			Options: ChartOptions{
				Responsive:          true,
				MaintainAspectRatio: false,
				Scales: map[string]Axis{
					"x": {
						Type: "time",
						Time: &TimeAxis{
							Unit:           "hour",
							DisplayFormats: map[string]string{"hour": hourTickFormat},
							TooltipFormat:  hourTickFormat,
						},
					},
					PowerAxisID: {
						Type:        "linear",
						BeginAtZero: true,
						Title:       &AxisTitle{Display: true, Text: PowerAxisTitle},
					},
				},
			},
		},
	}
}
