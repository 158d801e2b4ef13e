package dataset

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soporte-insights/backend/internal/models"
)

// Dataset is one uploaded, normalized ticket file held for the session.
// Tickets are immutable once stored.
type Dataset struct {
	ID          string          `json:"id"`
	FileName    string          `json:"file_name"`
	RowsRead    int             `json:"rows_read"`
	RowsDropped int             `json:"rows_dropped"`
	TicketCount int             `json:"ticket_count"`
	Years       []int           `json:"years"`
	UploadedAt  time.Time       `json:"uploaded_at"`
	Tickets     []models.Ticket `json:"-"`
}

// Store keeps uploaded datasets in memory, keyed by id. Safe for concurrent
// use; nothing is persisted to disk.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	latest   string
}

func New() *Store {
	return &Store{datasets: map[string]*Dataset{}}
}

// Put stores a normalized dataset and returns it with a fresh id.
func (s *Store) Put(fileName string, tickets []models.Ticket, rowsRead, rowsDropped int, years []int) *Dataset {
	d := &Dataset{
		ID:          uuid.NewString(),
		FileName:    fileName,
		RowsRead:    rowsRead,
		RowsDropped: rowsDropped,
		TicketCount: len(tickets),
		Years:       years,
		UploadedAt:  time.Now().UTC(),
		Tickets:     tickets,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[d.ID] = d
	s.latest = d.ID
	return d
}

func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.datasets[id]
	return d, ok
}

// Latest returns the most recently uploaded dataset still in the store.
func (s *Store) Latest() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == "" {
		return nil, false
	}
	d, ok := s.datasets[s.latest]
	return d, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return false
	}
	delete(s.datasets, id)
	if s.latest == id {
		s.latest = ""
		var newest *Dataset
		for _, d := range s.datasets {
			if newest == nil || d.UploadedAt.After(newest.UploadedAt) {
				newest = d
			}
		}
		if newest != nil {
			s.latest = newest.ID
		}
	}
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
