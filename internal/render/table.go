package render

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"solar-wind-forecast/internal/models"
)

const (
	DefaultPageSize = 6
	RowTimeLayout   = "1/2/2006, 3:04:05 PM"
	NoDataMessage   = "No data to display for this time range."
)

var titleCaser = cases.Title(language.English)

// SeriesTitle is the display name of a series, e.g. "Solar".
func SeriesTitle(id models.SeriesID) string {
	return titleCaser.String(string(id))
}

type Row struct {
	Time  string
	Value string
}

type Option struct {
	Index    int
	Label    string
	Selected bool
}

type Selector struct {
	Visible bool
	Options []Option
}

// Table is one series rendered for its current pagination window.
type Table struct {
	Series      models.SeriesID
	Title       string
	Page        int
	Rows        []Row
	Placeholder string
	Selector    Selector
}

// PageCount is ceil(n/size). It returns 0 for an empty series.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageBounds returns the half-open index window [start, end) of page. A page past the end
// yields start == end.
func PageBounds(n, size, page int) (int, int) {
	if size <= 0 || page < 0 {
		return 0, 0
	}
	if n <= 0 || page > (n-1)/size {
		return n, n
	}
	start := page * size
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}

// PageLabel is the selector label for page, "Hours k - m" with 1-based hours.
func PageLabel(n, size, page int) string {
	start, end := PageBounds(n, size, page)
	return fmt.Sprintf("Hours %d - %d", start+1, end)
}

// BuildTable renders one series. values must have the same length as series.
func BuildTable(id models.SeriesID, series *models.ForecastSeries, values []float64, size, page int) Table {
	if size <= 0 {
		size = DefaultPageSize
	}
	n := series.Len()

	t := Table{
		Series: id,
		Title:  SeriesTitle(id) + " Power (W/m²)",
		Page:   page,
	}

	start, end := PageBounds(n, size, page)
	for i := start; i < end; i++ {
		t.Rows = append(t.Rows, Row{
			Time:  series.Timestamps[i].Format(RowTimeLayout),
			Value: strconv.FormatFloat(values[i], 'f', 2, 64),
		})
	}
	if len(t.Rows) == 0 {
		t.Placeholder = NoDataMessage
	}

	pages := PageCount(n, size)
	t.Selector.Visible = pages > 1
	if t.Selector.Visible {
		t.Selector.Options = make([]Option, pages)
		for p := 0; p < pages; p++ {
			t.Selector.Options[p] = Option{
				Index:    p,
				Label:    PageLabel(n, size, p),
				Selected: p == page,
			}
		}
	}

	return t
}

// BuildTables renders every series in display order with its own page index.
func BuildTables(series *models.ForecastSeries, derived models.DerivedPower, size int, pages map[models.SeriesID]int) []Table {
	tables := make([]Table, 0, len(models.AllSeries))
	for _, id := range models.AllSeries {
		tables = append(tables, BuildTable(id, series, derived.Series(id), size, pages[id]))
	}
	return tables
}
