package analytics

import (
	"strings"

	"github.com/soporte-insights/backend/internal/models"
)

// Kpis are the six executive-summary scalars.
type Kpis struct {
	TotalTickets          int     `json:"totalTickets"`
	PercentageClosed      float64 `json:"percentageClosed"`
	AvgResolutionHours    float64 `json:"avgResolutionHours"`
	FcrRate               float64 `json:"fcrRate"`
	AvgReassignments      float64 `json:"avgReassignments"`
	PositiveSentimentRate float64 `json:"positiveSentimentRate"`
}

// KpiComparison holds an independent Kpis calculation per comparison year.
type KpiComparison struct {
	Current  Kpis `json:"current"`
	Previous Kpis `json:"previous"`
}

// KpiResult is the summary section output: exactly one of the two fields is
// set, depending on comparison mode.
type KpiResult struct {
	Kpis       *Kpis          `json:"kpis,omitempty"`
	Comparison *KpiComparison `json:"comparisonKpis,omitempty"`
}

// CalculateKpiResult reduces the dataset to the executive-summary scalars,
// split per year when comparing.
func CalculateKpiResult(tickets []models.Ticket, compare bool, years *models.ComparisonYears) KpiResult {
	if compare && years != nil {
		return KpiResult{Comparison: &KpiComparison{
			Current:  calculateKpis(sliceYear(tickets, years.Current)),
			Previous: calculateKpis(sliceYear(tickets, years.Previous)),
		}}
	}
	k := calculateKpis(tickets)
	return KpiResult{Kpis: &k}
}

func calculateKpis(tickets []models.Ticket) Kpis {
	if len(tickets) == 0 {
		return Kpis{}
	}

	total := len(tickets)
	closed := 0
	var resolutionSum float64
	resolutionCount := 0
	fcr := 0
	var reassignSum float64
	reassignCount := 0
	positive, negative, neutral := 0, 0, 0

	for _, t := range tickets {
		if t.IsClosed() {
			closed++
			if hours, ok := t.ResolutionHours(); ok {
				resolutionSum += hours
				resolutionCount++
			}
		}
		if t.IsFirstCallResolution {
			fcr++
		}
		if t.Reassignments != nil && *t.Reassignments >= 0 {
			reassignSum += *t.Reassignments
			reassignCount++
		}
		switch classifySentiment(t.Sentiment) {
		case "positive":
			positive++
		case "negative":
			negative++
		case "neutral":
			neutral++
		}
	}

	k := Kpis{
		TotalTickets:     total,
		PercentageClosed: float64(closed) / float64(total) * 100,
		FcrRate:          float64(fcr) / float64(total) * 100,
	}
	if resolutionCount > 0 {
		k.AvgResolutionHours = resolutionSum / float64(resolutionCount)
	}
	if reassignCount > 0 {
		k.AvgReassignments = reassignSum / float64(reassignCount)
	}
	if known := positive + negative + neutral; known > 0 {
		k.PositiveSentimentRate = float64(positive) / float64(known) * 100
	}
	return k
}

// classifySentiment buckets a free-form sentiment value by substring match.
// Anything unrecognized is "unknown" and stays out of the rate denominator.
func classifySentiment(sentiment *string) string {
	if sentiment == nil {
		return "unknown"
	}
	s := strings.ToLower(*sentiment)
	switch {
	case strings.Contains(s, "positive"):
		return "positive"
	case strings.Contains(s, "negative"):
		return "negative"
	case strings.Contains(s, "neutral"):
		return "neutral"
	default:
		return "unknown"
	}
}
