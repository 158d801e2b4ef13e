package ai

import (
	"strings"
	"testing"

	"github.com/soporte-insights/backend/internal/analytics"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildGeneralPromptIncludesCorrelationFindings(t *testing.T) {
	bundle := analytics.Bundle{
		Summary: analytics.KpiResult{Kpis: &analytics.Kpis{TotalTickets: 10}},
		Correlation: analytics.CorrelationResult{
			SentimentTime: analytics.SentimentTime{Negative: floatPtr(12.04)},
		},
	}

	prompt := BuildGeneralPrompt(bundle)
	if !strings.Contains(prompt, "Total de Tickets: 10") {
		t.Fatalf("expected KPI line, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "correlación entre el número de reasignaciones") {
		t.Fatalf("expected correlation line, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "tardan en promedio 12.0 hs en resolverse") {
		t.Fatalf("expected negative-sentiment line, got:\n%s", prompt)
	}
}

func TestBuildCorrelationPrompt(t *testing.T) {
	corr := analytics.CorrelationResult{
		TopCategoriesByTime: []analytics.CategoryTime{
			{Name: "Hardware", Value: 40},
			{Name: "Correo", Value: 30},
			{Name: "Acceso", Value: 20},
			{Name: "Otros", Value: 10},
		},
		SentimentTime: analytics.SentimentTime{
			Positive: floatPtr(5),
			Negative: floatPtr(20),
		},
		Outliers: []analytics.OutlierTicket{{ID: "a"}, {ID: "b"}},
	}

	prompt := BuildCorrelationPrompt(corr)
	if !strings.Contains(prompt, "Hardware, Correo, Acceso.") {
		t.Fatalf("expected top-3 slow categories only, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "más tiempo en resolverse") {
		t.Fatalf("expected negative-slower comparison, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2 tickets atípicos") {
		t.Fatalf("expected outlier count, got:\n%s", prompt)
	}
}
