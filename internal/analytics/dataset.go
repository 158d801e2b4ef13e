package analytics

import (
	"sort"

	"github.com/soporte-insights/backend/internal/models"
)

// FilterableFields are the ticket fields the dashboard exposes as
// multi-select filters.
var FilterableFields = []string{
	"creation_month_name",
	"ticket_owner_name",
	"category",
	"sub_category",
	"regional_sede",
	"programa",
}

// AvailableFilters collects the distinct non-empty values per filterable
// field, sorted, so the client can populate its filter panel.
func AvailableFilters(tickets []models.Ticket) map[string][]string {
	seen := map[string]map[string]struct{}{}
	for _, field := range FilterableFields {
		seen[field] = map[string]struct{}{}
	}
	for _, t := range tickets {
		for _, field := range FilterableFields {
			if v := fieldValue(t, field); v != "" {
				seen[field][v] = struct{}{}
			}
		}
	}
	out := map[string][]string{}
	for field, values := range seen {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		out[field] = list
	}
	return out
}

// ApplyFilters returns the subset of tickets matching every active filter
// (conjunctive across fields, disjunctive within a field's values). The
// input slice is never mutated; with no active filters it is returned as is.
func ApplyFilters(tickets []models.Ticket, active map[string][]string) []models.Ticket {
	hasActive := false
	for _, values := range active {
		if len(values) > 0 {
			hasActive = true
			break
		}
	}
	if !hasActive {
		return tickets
	}

	var out []models.Ticket
	for _, t := range tickets {
		if matchesFilters(t, active) {
			out = append(out, t)
		}
	}
	return out
}

// fieldValue resolves a filterable field for one ticket. The month name is
// derived from the creation timestamp rather than stored on the ticket.
func fieldValue(t models.Ticket, field string) string {
	if field == "creation_month_name" {
		if t.CreationTime.IsZero() {
			return ""
		}
		return MonthNamesShort[int(t.CreationTime.Month())-1]
	}
	return t.FieldString(field)
}

func matchesFilters(t models.Ticket, active map[string][]string) bool {
	for field, values := range active {
		if len(values) == 0 {
			continue
		}
		actual := fieldValue(t, field)
		found := false
		for _, v := range values {
			if v == actual {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DeriveComparisonYears picks the two most recent distinct years present in
// the dataset. Nil when fewer than two exist, meaning comparison mode is
// unavailable.
func DeriveComparisonYears(tickets []models.Ticket) *models.ComparisonYears {
	seen := map[int]struct{}{}
	for _, t := range tickets {
		if t.Year != 0 {
			seen[t.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	if len(years) < 2 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return &models.ComparisonYears{Current: years[0], Previous: years[1]}
}

// Years lists the distinct years in the dataset, descending.
func Years(tickets []models.Ticket) []int {
	seen := map[int]struct{}{}
	for _, t := range tickets {
		if t.Year != 0 {
			seen[t.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func sliceYear(tickets []models.Ticket, year int) []models.Ticket {
	var out []models.Ticket
	for _, t := range tickets {
		if t.Year == year {
			out = append(out, t)
		}
	}
	return out
}
