package analytics

import (
	"fmt"
	"sort"
	"time"
)

// MonthNamesShort are the Spanish month abbreviations used in bucket labels.
var MonthNamesShort = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type monthKey struct {
	Year  int
	Month time.Month
}

func monthOf(ts time.Time) monthKey {
	return monthKey{Year: ts.Year(), Month: ts.Month()}
}

func (k monthKey) label() string {
	return fmt.Sprintf("%s %d", MonthNamesShort[int(k.Month)-1], k.Year)
}

// sortedMonthKeys returns the map's keys in chronological order.
func sortedMonthKeys[V any](m map[monthKey]V) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})
	return keys
}
