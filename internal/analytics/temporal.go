package analytics

import (
	"sort"
	"time"

	"github.com/soporte-insights/backend/internal/models"
)

// PreferredStatusOrder is the display order for known statuses; statuses
// outside it sort alphabetically after.
var PreferredStatusOrder = []string{"Closed", "Cerrado FCR", "In Progress", "Assigned", "Pending"}

// StatusColors maps statuses to their display color, with a Default
// fallback for anything unknown.
var StatusColors = map[string]string{
	"Closed":      "#22c55e",
	"Cerrado FCR": "#10b981",
	"In Progress": "#3b82f6",
	"Assigned":    "#eab308",
	"Pending":     "#f97316",
	"Default":     "#9ca3af",
}

// TimeSeriesPoint is one monthly bucket of created/resolved counts.
type TimeSeriesPoint struct {
	Label    string `json:"label"`
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}

// ComparedTimeSeriesPoint overlays two years on the same calendar month.
type ComparedTimeSeriesPoint struct {
	Label            string `json:"label"`
	CreatedCurrent   int    `json:"created_current"`
	ResolvedCurrent  int    `json:"resolved_current"`
	CreatedPrevious  int    `json:"created_previous"`
	ResolvedPrevious int    `json:"resolved_previous"`
}

// StackedPoint is one monthly bucket with a count per status.
type StackedPoint struct {
	Label  string         `json:"label"`
	Values map[string]int `json:"values"`
}

// ComparedStackedPoint keeps only the per-year totals: the per-status
// breakdown is not preserved in comparison mode.
type ComparedStackedPoint struct {
	Label    string `json:"label"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
}

// HeatmapMatrix is a 7x24 day-by-hour grid of creation counts, Monday first.
type HeatmapMatrix [7][24]int

// Heatmap carries one grid per comparison year; Previous is nil outside
// comparison mode.
type Heatmap struct {
	Current  HeatmapMatrix  `json:"current"`
	Previous *HeatmapMatrix `json:"previous"`
}

// TemporalResult bundles the three temporal structures plus the status
// ordering shared with the classification crosstab.
type TemporalResult struct {
	TimeSeries         []TimeSeriesPoint         `json:"timeSeries,omitempty"`
	ComparedTimeSeries []ComparedTimeSeriesPoint `json:"comparedTimeSeries,omitempty"`
	Stacked            []StackedPoint            `json:"stacked,omitempty"`
	ComparedStacked    []ComparedStackedPoint    `json:"comparedStacked,omitempty"`
	Heatmap            Heatmap                   `json:"heatmap"`
	StatusOrder        []string                  `json:"statusOrder"`
	StatusColors       map[string]string         `json:"statusColors"`
}

// CalculateTemporal buckets the dataset by month, status and day/hour in a
// single pass per structure.
func CalculateTemporal(tickets []models.Ticket, compare bool, years *models.ComparisonYears) TemporalResult {
	res := TemporalResult{
		StatusOrder:  OrderStatuses(observedStatuses(tickets)),
		StatusColors: StatusColors,
	}

	if compare && years != nil {
		res.ComparedTimeSeries = comparedTimeSeries(tickets, *years)
		res.ComparedStacked = comparedStacked(tickets, *years)
		prev := buildHeatmapMatrix(sliceYear(tickets, years.Previous))
		res.Heatmap = Heatmap{
			Current:  buildHeatmapMatrix(sliceYear(tickets, years.Current)),
			Previous: &prev,
		}
		return res
	}

	res.TimeSeries = singleTimeSeries(tickets)
	res.Stacked = singleStacked(tickets)
	res.Heatmap = Heatmap{Current: buildHeatmapMatrix(tickets)}
	return res
}

func singleTimeSeries(tickets []models.Ticket) []TimeSeriesPoint {
	type counts struct{ created, resolved int }
	byMonth := map[monthKey]*counts{}
	bucket := func(k monthKey) *counts {
		c, ok := byMonth[k]
		if !ok {
			c = &counts{}
			byMonth[k] = c
		}
		return c
	}

	for _, t := range tickets {
		bucket(monthOf(t.CreationTime)).created++
		if t.IsClosed() {
			bucket(monthOf(t.ModificationTime)).resolved++
		}
	}

	keys := sortedMonthKeys(byMonth)
	out := make([]TimeSeriesPoint, 0, len(keys))
	for _, k := range keys {
		c := byMonth[k]
		out = append(out, TimeSeriesPoint{Label: k.label(), Created: c.created, Resolved: c.resolved})
	}
	return out
}

func comparedTimeSeries(tickets []models.Ticket, years models.ComparisonYears) []ComparedTimeSeriesPoint {
	points := make([]ComparedTimeSeriesPoint, 12)
	for i := range points {
		points[i].Label = MonthNamesShort[i]
	}

	for _, t := range tickets {
		m := int(t.CreationTime.Month()) - 1
		switch t.Year {
		case years.Current:
			points[m].CreatedCurrent++
		case years.Previous:
			points[m].CreatedPrevious++
		}
		if t.IsClosed() {
			rm := int(t.ModificationTime.Month()) - 1
			switch t.Year {
			case years.Current:
				points[rm].ResolvedCurrent++
			case years.Previous:
				points[rm].ResolvedPrevious++
			}
		}
	}
	return points
}

func singleStacked(tickets []models.Ticket) []StackedPoint {
	byMonth := map[monthKey]map[string]int{}
	for _, t := range tickets {
		if t.Status == nil {
			continue
		}
		k := monthOf(t.CreationTime)
		if byMonth[k] == nil {
			byMonth[k] = map[string]int{}
		}
		byMonth[k][*t.Status]++
	}

	keys := sortedMonthKeys(byMonth)
	out := make([]StackedPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, StackedPoint{Label: k.label(), Values: byMonth[k]})
	}
	return out
}

func comparedStacked(tickets []models.Ticket, years models.ComparisonYears) []ComparedStackedPoint {
	points := make([]ComparedStackedPoint, 12)
	for i := range points {
		points[i].Label = MonthNamesShort[i]
	}
	for _, t := range tickets {
		m := int(t.CreationTime.Month()) - 1
		switch t.Year {
		case years.Current:
			points[m].Current++
		case years.Previous:
			points[m].Previous++
		}
	}
	return points
}

func buildHeatmapMatrix(tickets []models.Ticket) HeatmapMatrix {
	var grid HeatmapMatrix
	for _, t := range tickets {
		grid[mondayFirst(t.CreationTime.Weekday())][t.CreationTime.Hour()]++
	}
	return grid
}

// mondayFirst remaps Go's Sunday=0 weekday so Monday=0 and Sunday=6.
func mondayFirst(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

func observedStatuses(tickets []models.Ticket) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range tickets {
		if t.Status == nil {
			continue
		}
		if _, ok := seen[*t.Status]; ok {
			continue
		}
		seen[*t.Status] = struct{}{}
		out = append(out, *t.Status)
	}
	return out
}

// OrderStatuses sorts statuses by the preferred display order, then the
// remainder alphabetically.
func OrderStatuses(statuses []string) []string {
	present := map[string]bool{}
	for _, s := range statuses {
		present[s] = true
	}

	var out []string
	preferred := map[string]bool{}
	for _, s := range PreferredStatusOrder {
		preferred[s] = true
		if present[s] {
			out = append(out, s)
		}
	}

	var rest []string
	for _, s := range statuses {
		if !preferred[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// StatusColor resolves a status to its display color, falling back to the
// Default bucket for unknown statuses.
func StatusColor(status string) string {
	if c, ok := StatusColors[status]; ok {
		return c
	}
	return StatusColors["Default"]
}
