package analytics

import (
	"testing"

	"github.com/soporte-insights/backend/internal/models"
)

func TestCorrelationScatterUsesResolvedTicketsWithReassignments(t *testing.T) {
	a := ticket("Closed", "2024-01-01T10:00", "2024-01-01T16:00")
	a.Reassignments = floatPtr(2)
	a.Asunto = strPtr("Error de acceso")
	b := ticket("Closed", "2024-01-02T10:00", "2024-01-02T14:00")
	// resolved but no reassignment count: excluded from the scatter
	c := ticket("In Progress", "2024-01-03T10:00", "2024-01-03T12:00")
	c.Reassignments = floatPtr(5)

	res := CalculateCorrelation([]models.Ticket{a, b, c})
	if len(res.Scatter) != 1 {
		t.Fatalf("expected 1 scatter point, got %d", len(res.Scatter))
	}
	p := res.Scatter[0]
	if p.X != 2 || p.Label != "Error de acceso" {
		t.Fatalf("unexpected scatter point: %+v", p)
	}
	approx(t, p.Y, 6.0, "scatter resolution hours")
}

func TestCorrelationTopCategoriesByTime(t *testing.T) {
	slow := ticket("Closed", "2024-01-01T10:00", "2024-01-02T10:00")
	slow.Category = strPtr("Hardware")
	fast1 := ticket("Closed", "2024-01-03T10:00", "2024-01-03T12:00")
	fast1.Category = strPtr("Correo")
	fast2 := ticket("Closed", "2024-01-04T10:00", "2024-01-04T14:00")
	fast2.Category = strPtr("Correo")
	uncategorized := ticket("Closed", "2024-01-05T10:00", "2024-01-05T11:00")

	res := CalculateCorrelation([]models.Ticket{slow, fast1, fast2, uncategorized})
	if len(res.TopCategoriesByTime) != 3 {
		t.Fatalf("expected 3 ranked categories, got %v", res.TopCategoriesByTime)
	}
	if res.TopCategoriesByTime[0].Name != "Hardware" {
		t.Fatalf("expected slowest category first, got %s", res.TopCategoriesByTime[0].Name)
	}
	approx(t, res.TopCategoriesByTime[0].Value, 24.0, "Hardware avg hours")
	approx(t, res.TopCategoriesByTime[1].Value, 3.0, "Correo avg hours")
	if res.TopCategoriesByTime[2].Name != "Sin Categoría" {
		t.Fatalf("expected default bucket for uncategorized tickets, got %s", res.TopCategoriesByTime[2].Name)
	}
}

func TestCorrelationSentimentTime(t *testing.T) {
	pos := ticket("Closed", "2024-01-01T10:00", "2024-01-01T14:00")
	pos.Sentiment = strPtr("positive")
	neg := ticket("Closed", "2024-01-02T10:00", "2024-01-02T22:00")
	neg.Sentiment = strPtr("negative")
	unknown := ticket("Closed", "2024-01-03T10:00", "2024-01-03T11:00")

	res := CalculateCorrelation([]models.Ticket{pos, neg, unknown})
	if res.SentimentTime.Positive == nil || res.SentimentTime.Negative == nil {
		t.Fatalf("expected both sentiment averages, got %+v", res.SentimentTime)
	}
	approx(t, *res.SentimentTime.Positive, 4.0, "positive avg")
	approx(t, *res.SentimentTime.Negative, 12.0, "negative avg")
	if res.SentimentTime.Neutral != nil {
		t.Fatalf("expected nil neutral bucket, got %v", *res.SentimentTime.Neutral)
	}
}

func TestCorrelationOutlierDetection(t *testing.T) {
	var tickets []models.Ticket
	for _, day := range []string{"01", "02", "03", "04", "05"} {
		n := ticket("Closed", "2024-01-"+day+"T10:00", "2024-01-"+day+"T12:00")
		n.Reassignments = floatPtr(1)
		tickets = append(tickets, n)
	}
	extreme := ticket("Closed", "2024-02-01T10:00", "2024-02-05T10:00")
	extreme.Reassignments = floatPtr(1)
	extreme.Asunto = strPtr("Caso interminable")
	extreme.ID = strPtr("t-99")
	tickets = append(tickets, extreme)

	res := CalculateCorrelation(tickets)
	if len(res.Outliers) != 1 {
		t.Fatalf("expected 1 outlier, got %+v", res.Outliers)
	}
	out := res.Outliers[0]
	if out.ID != "t-99" || out.Asunto != "Caso interminable" {
		t.Fatalf("unexpected outlier identity: %+v", out)
	}
	approx(t, out.ResolutionHours, 96.0, "outlier hours")
	if out.Reassignments != 1 {
		t.Fatalf("expected reassignments carried through, got %v", out.Reassignments)
	}
}

func TestCorrelationNoOutliersOnFlatDistribution(t *testing.T) {
	var tickets []models.Ticket
	for _, day := range []string{"01", "02", "03", "04", "05"} {
		tickets = append(tickets, ticket("Closed", "2024-01-"+day+"T10:00", "2024-01-"+day+"T12:00"))
	}

	res := CalculateCorrelation(tickets)
	if len(res.Outliers) != 0 {
		t.Fatalf("expected no outliers for identical durations, got %+v", res.Outliers)
	}
}

func TestCorrelationEmptyDataset(t *testing.T) {
	res := CalculateCorrelation(nil)
	if len(res.Scatter) != 0 || len(res.TopCategoriesByTime) != 0 || len(res.Outliers) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.SentimentTime.Positive != nil || res.SentimentTime.Negative != nil || res.SentimentTime.Neutral != nil {
		t.Fatalf("expected nil sentiment buckets, got %+v", res.SentimentTime)
	}
}
