package analytics

import (
	"math"
	"sort"

	"github.com/soporte-insights/backend/internal/models"
)

const (
	slowCategoryLimit = 10
	outlierLimit      = 10
	outlierSigma      = 2.0
)

// ReassignmentPoint is one resolved ticket in the reassignments-vs-resolution
// projection.
type ReassignmentPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// CategoryTime ranks a category by its average resolution time.
type CategoryTime struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SentimentTime holds the average resolution hours per sentiment bucket; a
// bucket with no resolved tickets is nil.
type SentimentTime struct {
	Positive *float64 `json:"positive"`
	Neutral  *float64 `json:"neutral"`
	Negative *float64 `json:"negative"`
}

// OutlierTicket is one ticket whose metrics sit far outside the dataset's
// distribution.
type OutlierTicket struct {
	ID              string  `json:"id"`
	Asunto          string  `json:"asunto"`
	ResolutionHours float64 `json:"resolutionTimeHours"`
	Reassignments   float64 `json:"reassignments"`
}

// CorrelationResult bundles the cross-metric patterns: the
// reassignments-vs-resolution scatter, the slowest categories, the
// per-sentiment resolution averages and the outlier list.
type CorrelationResult struct {
	Scatter             []ReassignmentPoint `json:"scatter"`
	TopCategoriesByTime []CategoryTime      `json:"topCategoriesByTime"`
	SentimentTime       SentimentTime       `json:"sentimentTime"`
	Outliers            []OutlierTicket     `json:"outliers"`
}

// CalculateCorrelation derives the cross-metric patterns over the resolved
// tickets. Resolution samples follow the same rule as every other average in
// the pipeline: closed tickets with a non-negative duration.
func CalculateCorrelation(tickets []models.Ticket) CorrelationResult {
	type sample struct {
		ticket models.Ticket
		hours  float64
	}
	var samples []sample
	for _, t := range tickets {
		if !t.IsClosed() {
			continue
		}
		if hours, ok := t.ResolutionHours(); ok {
			samples = append(samples, sample{ticket: t, hours: hours})
		}
	}

	var res CorrelationResult

	for _, s := range samples {
		if s.ticket.Reassignments == nil {
			continue
		}
		res.Scatter = append(res.Scatter, ReassignmentPoint{
			X:     *s.ticket.Reassignments,
			Y:     s.hours,
			Label: ticketLabel(s.ticket),
		})
	}

	hoursByCategory := map[string][]float64{}
	for _, s := range samples {
		category := defaultCategory
		if s.ticket.Category != nil {
			category = *s.ticket.Category
		}
		hoursByCategory[category] = append(hoursByCategory[category], s.hours)
	}
	for name, hours := range hoursByCategory {
		res.TopCategoriesByTime = append(res.TopCategoriesByTime, CategoryTime{Name: name, Value: mean(hours)})
	}
	sort.Slice(res.TopCategoriesByTime, func(i, j int) bool {
		a, b := res.TopCategoriesByTime[i], res.TopCategoriesByTime[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})
	if len(res.TopCategoriesByTime) > slowCategoryLimit {
		res.TopCategoriesByTime = res.TopCategoriesByTime[:slowCategoryLimit]
	}

	hoursBySentiment := map[string][]float64{}
	for _, s := range samples {
		hoursBySentiment[classifySentiment(s.ticket.Sentiment)] = append(
			hoursBySentiment[classifySentiment(s.ticket.Sentiment)], s.hours)
	}
	res.SentimentTime = SentimentTime{
		Positive: meanOrNil(hoursBySentiment["positive"]),
		Neutral:  meanOrNil(hoursBySentiment["neutral"]),
		Negative: meanOrNil(hoursBySentiment["negative"]),
	}

	var allHours, allReassignments []float64
	for _, s := range samples {
		allHours = append(allHours, s.hours)
		if s.ticket.Reassignments != nil {
			allReassignments = append(allReassignments, *s.ticket.Reassignments)
		}
	}
	hourCutoff, hourOK := upperCutoff(allHours)
	reassignCutoff, reassignOK := upperCutoff(allReassignments)

	for _, s := range samples {
		atypical := hourOK && s.hours > hourCutoff
		if !atypical && reassignOK && s.ticket.Reassignments != nil {
			atypical = *s.ticket.Reassignments > reassignCutoff
		}
		if !atypical {
			continue
		}
		out := OutlierTicket{
			Asunto:          deref(s.ticket.Asunto),
			ID:              deref(s.ticket.ID),
			ResolutionHours: s.hours,
		}
		if s.ticket.Reassignments != nil {
			out.Reassignments = *s.ticket.Reassignments
		}
		res.Outliers = append(res.Outliers, out)
	}
	sort.SliceStable(res.Outliers, func(i, j int) bool {
		return res.Outliers[i].ResolutionHours > res.Outliers[j].ResolutionHours
	})
	if len(res.Outliers) > outlierLimit {
		res.Outliers = res.Outliers[:outlierLimit]
	}

	return res
}

// upperCutoff computes mean + 2 standard deviations. The second result is
// false when the distribution is too small or flat to flag anything.
func upperCutoff(values []float64) (float64, bool) {
	if len(values) < 4 {
		return 0, false
	}
	m := mean(values)
	var varSum float64
	for _, v := range values {
		varSum += (v - m) * (v - m)
	}
	sigma := math.Sqrt(varSum / float64(len(values)))
	if sigma == 0 {
		return 0, false
	}
	return m + outlierSigma*sigma, true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := mean(values)
	return &m
}

func ticketLabel(t models.Ticket) string {
	if t.Asunto != nil {
		return *t.Asunto
	}
	return deref(t.ID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
