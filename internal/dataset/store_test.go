package dataset

import (
	"testing"

	"github.com/soporte-insights/backend/internal/models"
)

func TestStorePutGetLatest(t *testing.T) {
	s := New()
	if _, ok := s.Latest(); ok {
		t.Fatal("expected no latest dataset in an empty store")
	}

	first := s.Put("enero.csv", []models.Ticket{{}}, 10, 2, []int{2024})
	second := s.Put("febrero.csv", []models.Ticket{{}, {}}, 5, 0, []int{2024})

	if first.ID == second.ID {
		t.Fatal("expected distinct ids per upload")
	}
	if first.TicketCount != 1 || first.RowsRead != 10 || first.RowsDropped != 2 {
		t.Fatalf("unexpected first dataset: %+v", first)
	}

	got, ok := s.Get(first.ID)
	if !ok || got.FileName != "enero.csv" {
		t.Fatalf("expected to retrieve first dataset, got %+v", got)
	}
	latest, ok := s.Latest()
	if !ok || latest.ID != second.ID {
		t.Fatalf("expected latest to be second upload, got %+v", latest)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 datasets, got %d", s.Len())
	}
}

func TestStoreDeleteRetargetsLatest(t *testing.T) {
	s := New()
	first := s.Put("enero.csv", nil, 0, 0, nil)
	second := s.Put("febrero.csv", nil, 0, 0, nil)

	if !s.Delete(second.ID) {
		t.Fatal("expected delete of existing dataset to succeed")
	}
	if s.Delete(second.ID) {
		t.Fatal("expected second delete of same id to fail")
	}
	latest, ok := s.Latest()
	if !ok || latest.ID != first.ID {
		t.Fatalf("expected latest to fall back to first upload, got %+v", latest)
	}

	if !s.Delete(first.ID) {
		t.Fatal("expected delete of remaining dataset to succeed")
	}
	if _, ok := s.Latest(); ok {
		t.Fatal("expected no latest after store emptied")
	}
}
