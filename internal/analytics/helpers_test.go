package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/soporte-insights/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func at(value string) time.Time {
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return ts
}

func ticket(status string, created, modified string) models.Ticket {
	c := at(created)
	t := models.Ticket{
		CreationTime:     c,
		ModificationTime: at(modified),
		Year:             c.Year(),
	}
	if status != "" {
		t.Status = strPtr(status)
	}
	return t
}

func approx(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("%s: expected %.4f, got %.4f", label, want, got)
	}
}
