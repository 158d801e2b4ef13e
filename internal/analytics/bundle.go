package analytics

import (
	"sync"

	"github.com/soporte-insights/backend/internal/models"
)

// Bundle is the full recomputable analytics output for one (dataset,
// filters, comparison) configuration.
type Bundle struct {
	Summary        KpiResult            `json:"summary"`
	Temporal       TemporalResult       `json:"temporal"`
	Classification ClassificationResult `json:"classification"`
	Efficiency     EfficiencyResult     `json:"efficiency"`
	Text           TextResult           `json:"text"`
	Correlation    CorrelationResult    `json:"correlation"`
}

// ComputeBundle runs all six sections over the same immutable dataset.
// Each section is a pure function with no shared state, so they fan out
// concurrently; the bundle is freshly allocated on every call.
func ComputeBundle(tickets []models.Ticket, compare bool, years *models.ComparisonYears) Bundle {
	var bundle Bundle
	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		bundle.Summary = CalculateKpiResult(tickets, compare, years)
	}()
	go func() {
		defer wg.Done()
		bundle.Temporal = CalculateTemporal(tickets, compare, years)
	}()
	go func() {
		defer wg.Done()
		bundle.Classification = CalculateClassification(tickets, compare, years)
	}()
	go func() {
		defer wg.Done()
		bundle.Efficiency = CalculateEfficiency(tickets, compare, years)
	}()
	go func() {
		defer wg.Done()
		bundle.Text = CalculateText(tickets)
	}()
	go func() {
		defer wg.Done()
		bundle.Correlation = CalculateCorrelation(tickets)
	}()

	wg.Wait()
	return bundle
}
