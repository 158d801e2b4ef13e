package analytics

import (
	"reflect"
	"testing"

	"github.com/soporte-insights/backend/internal/models"
)

func subjectTicket(asunto, created string) models.Ticket {
	t := ticket("Closed", created, created)
	t.Asunto = strPtr(asunto)
	return t
}

func TestGenerateBigrams(t *testing.T) {
	got := GenerateBigrams("Error de acceso al aula virtual correo institucional")
	want := []string{"error acceso", "acceso correo", "correo institucional"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGenerateBigramsStopwordsOnly(t *testing.T) {
	if got := GenerateBigrams("de la que el en y a"); got != nil {
		t.Fatalf("expected no bigrams from stop words, got %v", got)
	}
	if got := GenerateBigrams("soporte ticket caso x 42 7"); got != nil {
		t.Fatalf("expected no bigrams from filtered tokens, got %v", got)
	}
}

func TestGenerateBigramsRepeatedPairsCount(t *testing.T) {
	tickets := []models.Ticket{
		subjectTicket("correo institucional correo institucional", "2024-01-01T10:00"),
	}
	res := CalculateText(tickets)
	var found *BigramCount
	for i := range res.TopBigrams {
		if res.TopBigrams[i].Phrase == "correo institucional" {
			found = &res.TopBigrams[i]
		}
	}
	if found == nil || found.Count != 2 {
		t.Fatalf("expected repeated bigram counted twice, got %+v", res.TopBigrams)
	}
}

func TestTextTrendsAndExamples(t *testing.T) {
	tickets := []models.Ticket{
		subjectTicket("Error acceso correo institucional", "2024-01-05T10:00"),
		subjectTicket("error acceso recurrente", "2024-01-20T10:00"),
		subjectTicket("Error acceso otra vez", "2024-02-02T10:00"),
		subjectTicket("restablecer clave", "2024-02-10T10:00"),
	}

	res := CalculateText(tickets)
	if len(res.TopBigrams) == 0 || res.TopBigrams[0].Phrase != "error acceso" {
		t.Fatalf("expected error acceso ranked first, got %+v", res.TopBigrams)
	}

	if len(res.Trends) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(res.Trends))
	}
	if res.Trends[0].Month != "Ene 2024" || res.Trends[1].Month != "Feb 2024" {
		t.Fatalf("expected chronological trend months, got %+v", res.Trends)
	}
	if res.Trends[0].Counts["error acceso"] != 2 {
		t.Fatalf("expected 2 January matches, got %d", res.Trends[0].Counts["error acceso"])
	}
	if res.Trends[1].Counts["error acceso"] != 1 {
		t.Fatalf("expected 1 February match, got %d", res.Trends[1].Counts["error acceso"])
	}

	var examples *BigramExamples
	for i := range res.Examples {
		if res.Examples[i].Phrase == "error acceso" {
			examples = &res.Examples[i]
		}
	}
	if examples == nil {
		t.Fatalf("expected examples for top bigram")
	}
	if len(examples.Examples) != 3 {
		t.Fatalf("expected 3 example subjects, got %d", len(examples.Examples))
	}
	if examples.Examples[0] != "Error acceso correo institucional" {
		t.Fatalf("expected examples in dataset order, got %v", examples.Examples)
	}
}
