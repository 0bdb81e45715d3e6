package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-wind-forecast/internal/models"
)

func hourlySeries(n int) (*models.ForecastSeries, models.DerivedPower) {
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	s := &models.ForecastSeries{}
	d := models.DerivedPower{}
	for i := 0; i < n; i++ {
		s.Timestamps = append(s.Timestamps, start.Add(time.Duration(i)*time.Hour))
		s.WindSpeed = append(s.WindSpeed, float64(i))
		s.DirectRadiation = append(s.DirectRadiation, 0)
		s.DiffuseRadiation = append(s.DiffuseRadiation, 0)
		d.Solar = append(d.Solar, float64(i)+0.126)
		d.Wind = append(d.Wind, float64(i)*10)
	}
	return s, d
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{72, 6, 12},
		{73, 6, 13},
		{5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, PageCount(tt.n, tt.size))
		})
	}
}

func TestPageBounds(t *testing.T) {
	for n := 0; n <= 20; n++ {
		pages := PageCount(n, 6)
		covered := 0
		for p := 0; p < pages; p++ {
			start, end := PageBounds(n, 6, p)
			assert.Equal(t, 6*p, start)
			assert.LessOrEqual(t, end-start, 6)
			assert.Greater(t, end, start)
			covered += end - start
		}
		assert.Equal(t, n, covered)

		start, end := PageBounds(n, 6, pages)
		assert.Equal(t, start, end)
	}

	start, end := PageBounds(10, 6, -1)
	assert.Equal(t, start, end)

	for _, page := range []int{math.MaxInt, math.MaxInt / 6, 1 << 62, 4611686018427387904} {
		start, end := PageBounds(72, 6, page)
		assert.Equal(t, 72, start)
		assert.Equal(t, 72, end)
	}
}

func TestBuildTable_HugePage(t *testing.T) {
	s, d := hourlySeries(72)

	table := BuildTable(models.SeriesWind, s, d.Wind, 6, math.MaxInt)

	assert.Empty(t, table.Rows)
	assert.Equal(t, NoDataMessage, table.Placeholder)
	assert.Len(t, table.Selector.Options, 12)
}

func TestPageLabel(t *testing.T) {
	assert.Equal(t, "Hours 1 - 6", PageLabel(72, 6, 0))
	assert.Equal(t, "Hours 19 - 24", PageLabel(72, 6, 3))
	assert.Equal(t, "Hours 7 - 8", PageLabel(8, 6, 1))
}

func TestBuildTable_Rows(t *testing.T) {
	s, d := hourlySeries(8)

	table := BuildTable(models.SeriesSolar, s, d.Solar, 6, 1)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Solar Power (W/m²)", table.Title)
	assert.Equal(t, "10/16/2026, 6:00:00 AM", table.Rows[0].Time)
	assert.Equal(t, "6.13", table.Rows[0].Value)
	assert.Equal(t, "7.13", table.Rows[1].Value)
	assert.Empty(t, table.Placeholder)

	require.True(t, table.Selector.Visible)
	require.Len(t, table.Selector.Options, 2)
	assert.Equal(t, "Hours 7 - 8", table.Selector.Options[1].Label)
	assert.True(t, table.Selector.Options[1].Selected)
	assert.False(t, table.Selector.Options[0].Selected)
}

func TestBuildTable_Empty(t *testing.T) {
	s, d := hourlySeries(0)

	table := BuildTable(models.SeriesWind, s, d.Wind, 6, 0)

	assert.Empty(t, table.Rows)
	assert.Equal(t, NoDataMessage, table.Placeholder)
	assert.False(t, table.Selector.Visible)
	assert.Empty(t, table.Selector.Options)
}

func TestBuildTable_SinglePageHidesSelector(t *testing.T) {
	s, d := hourlySeries(6)

	table := BuildTable(models.SeriesWind, s, d.Wind, 6, 0)

	assert.Len(t, table.Rows, 6)
	assert.False(t, table.Selector.Visible)
}

func TestBuildTable_OutOfRangePage(t *testing.T) {
	s, d := hourlySeries(12)

	table := BuildTable(models.SeriesWind, s, d.Wind, 6, 5)

	assert.Empty(t, table.Rows)
	assert.Equal(t, NoDataMessage, table.Placeholder)
	assert.True(t, table.Selector.Visible)
}

func TestBuildTables_IndependentPages(t *testing.T) {
	s, d := hourlySeries(72)

	tables := BuildTables(s, d, 6, map[models.SeriesID]int{models.SeriesWind: 3})

	require.Len(t, tables, 2)
	solar, wind := tables[0], tables[1]

	assert.Equal(t, models.SeriesSolar, solar.Series)
	assert.Len(t, solar.Selector.Options, 12)
	assert.Equal(t, "10/16/2026, 12:00:00 AM", solar.Rows[0].Time)

	assert.Equal(t, models.SeriesWind, wind.Series)
	assert.Len(t, wind.Selector.Options, 12)
	require.Len(t, wind.Rows, 6)
	assert.Equal(t, "10/16/2026, 6:00:00 PM", wind.Rows[0].Time)
	assert.Equal(t, "10/16/2026, 11:00:00 PM", wind.Rows[5].Time)
	assert.Equal(t, "180.00", wind.Rows[0].Value)
	assert.True(t, wind.Selector.Options[3].Selected)
}

func TestBuildChart(t *testing.T) {
	s, d := hourlySeries(3)

	spec := BuildChart(s, d, 4)

	assert.Equal(t, 4, spec.Revision)
	assert.Equal(t, "line", spec.Config.Type)
	assert.Equal(t, []string{"2026-10-16T00:00:00Z", "2026-10-16T01:00:00Z", "2026-10-16T02:00:00Z"}, spec.Config.Data.Labels)

	require.Len(t, spec.Config.Data.Datasets, 2)
	solar, wind := spec.Config.Data.Datasets[0], spec.Config.Data.Datasets[1]
	assert.Equal(t, "Solar Power (W/m²)", solar.Label)
	assert.Equal(t, "orange", solar.BorderColor)
	assert.Equal(t, d.Solar, solar.Data)
	assert.Equal(t, "Wind Power (W/m²)", wind.Label)
	assert.Equal(t, "blue", wind.BorderColor)
	assert.Equal(t, PowerAxisID, wind.YAxisID)
	assert.False(t, wind.Fill)

	x := spec.Config.Options.Scales["x"]
	assert.Equal(t, "time", x.Type)
	assert.Equal(t, "hour", x.Time.Unit)
	assert.Equal(t, "MMM dd, h a", x.Time.DisplayFormats["hour"])

	y := spec.Config.Options.Scales[PowerAxisID]
	assert.True(t, y.BeginAtZero)
	assert.Equal(t, PowerAxisTitle, y.Title.Text)

	raw, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"yAxisID":"power"`)
}

func TestViews_Page(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)

	s, d := hourlySeries(8)
	var buf bytes.Buffer
	err = views.Page(&buf, PageData{
		Title:  "solar-wind-forecast",
		Theme:  "dark-mode",
		Input:  `<Berlin>`,
		Label:  "Berlin, Germany",
		Error:  "Error finding location: nope",
		Chart:  BuildChart(s, d, 1),
		Tables: BuildTables(s, d, 6, nil),
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<body class="dark-mode">`)
	assert.Contains(t, html, "&lt;Berlin&gt;")
	assert.Contains(t, html, "Error finding location: nope")
	assert.Contains(t, html, `"revision":1`)
	assert.Contains(t, html, "Hours 7 - 8")
	assert.Equal(t, 2, strings.Count(html, `class="page-select"`))
}

func TestViews_PageWithoutForecast(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, views.Page(&buf, PageData{Title: "solar-wind-forecast"}))

	html := buf.String()
	assert.Contains(t, html, `<div id="error-message" class="error" hidden>`)
	assert.NotContains(t, html, "series-table")
}

func TestViews_TablesHTML(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)

	s, d := hourlySeries(0)
	html, err := views.TablesHTML(BuildTables(s, d, 6, nil))
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(html, NoDataMessage))
	assert.NotContains(t, html, "page-select")
}
