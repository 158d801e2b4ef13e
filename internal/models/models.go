package models

import (
	"strconv"
	"strings"
	"time"
)

// Ticket is one normalized support-request record. Fields map 1:1 to the
// canonical column vocabulary; optional fields are nil when the source cell
// was empty, missing, or the literal "null". Unrecognized source columns are
// carried in Extra under their snake_case names.
type Ticket struct {
	ID                    *string            `json:"id"`
	Asunto                *string            `json:"asunto"`
	TicketOwnerName       *string            `json:"ticket_owner_name"`
	UltimoAgente          *string            `json:"ultimo_agente"`
	Status                *string            `json:"status"`
	CreationTime          time.Time          `json:"creation_time"`
	ModificationTime      time.Time          `json:"modification_time"`
	Reassignments         *float64           `json:"reassignments"`
	IsFirstCallResolution bool               `json:"is_first_call_resolution"`
	Category              *string            `json:"category"`
	SubCategory           *string            `json:"sub_category"`
	RegionalSede          *string            `json:"regional_sede"`
	Programa              *string            `json:"programa"`
	Sentiment             *string            `json:"sentiment"`
	Vencido               *string            `json:"vencido"`
	Year                  int                `json:"year"`
	Extra                 map[string]*string `json:"extra,omitempty"`
}

// IsClosed reports whether the ticket status counts as closed. Substring
// match, so statuses like "Cerrado FCR" qualify.
func (t Ticket) IsClosed() bool {
	if t.Status == nil {
		return false
	}
	s := strings.ToLower(*t.Status)
	return strings.Contains(s, "closed") || strings.Contains(s, "cerrado")
}

// ResolutionHours returns modification minus creation time in hours. The
// second result is false for negative durations, which are data errors and
// must not enter any average.
func (t Ticket) ResolutionHours() (float64, bool) {
	d := t.ModificationTime.Sub(t.CreationTime)
	if d < 0 {
		return 0, false
	}
	return d.Hours(), true
}

// FieldString looks a canonical field up by name for filtering purposes.
// Returns "" when the field is nil or unknown.
func (t Ticket) FieldString(name string) string {
	switch name {
	case "id":
		return deref(t.ID)
	case "asunto":
		return deref(t.Asunto)
	case "ticket_owner_name":
		return deref(t.TicketOwnerName)
	case "ultimo_agente":
		return deref(t.UltimoAgente)
	case "status":
		return deref(t.Status)
	case "category":
		return deref(t.Category)
	case "sub_category":
		return deref(t.SubCategory)
	case "regional_sede":
		return deref(t.RegionalSede)
	case "programa":
		return deref(t.Programa)
	case "sentiment":
		return deref(t.Sentiment)
	case "vencido":
		return deref(t.Vencido)
	case "year":
		if t.Year == 0 {
			return ""
		}
		return strconv.Itoa(t.Year)
	default:
		return deref(t.Extra[name])
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ComparisonYears is the {current, previous} pair used for year-over-year
// splits: the two most recent distinct years present in a dataset.
type ComparisonYears struct {
	Current  int `json:"current"`
	Previous int `json:"previous"`
}
