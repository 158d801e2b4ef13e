package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeAliasPopulatesBothAgentFields(t *testing.T) {
	headers := []string{"Ticket Owner Name", "Hora_de_creación", "Hora_de_modificación"}
	rows := []map[string]string{
		{
			"Ticket Owner Name":    "Ana Pérez",
			"Hora_de_creación":     "2024-01-01 10:00:00",
			"Hora_de_modificación": "2024-01-02 10:00:00",
		},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(res.Tickets))
	}
	ticket := res.Tickets[0]
	if ticket.TicketOwnerName == nil || *ticket.TicketOwnerName != "Ana Pérez" {
		t.Fatalf("expected ticket_owner_name populated, got %v", ticket.TicketOwnerName)
	}
	if ticket.UltimoAgente == nil || *ticket.UltimoAgente != "Ana Pérez" {
		t.Fatalf("expected ultimo_agente populated from same column, got %v", ticket.UltimoAgente)
	}
}

func TestNormalizeDuplicateColumns(t *testing.T) {
	headers := []string{"Categoria", "categoria", "Hora de creacion", "Hora de modificacion"}
	_, err := Normalize(headers, nil, DefaultTables())

	var dup *DuplicateColumnsError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateColumnsError, got %v", err)
	}
	joined := strings.Join(dup.Columns, ",")
	if !strings.Contains(joined, "Categoria") || !strings.Contains(joined, "categoria") {
		t.Fatalf("expected both original names listed, got %v", dup.Columns)
	}
}

func TestNormalizeMissingRequiredColumns(t *testing.T) {
	headers := []string{"Asunto", "Estado"}
	res, err := Normalize(headers, []map[string]string{{"Asunto": "x", "Estado": "Closed"}}, DefaultTables())

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missing.Required) != 2 {
		t.Fatalf("expected both required labels named, got %v", missing.Required)
	}
	if len(res.Tickets) != 0 {
		t.Fatalf("expected no tickets on structural failure")
	}
}

func TestNormalizeDropsRowsWithInvalidDates(t *testing.T) {
	headers := []string{"Hora de creacion", "Hora de modificacion", "Asunto"}
	rows := []map[string]string{
		{"Hora de creacion": "2024-03-01 08:00:00", "Hora de modificacion": "2024-03-01 09:00:00", "Asunto": "ok"},
		{"Hora de creacion": "no es fecha", "Hora de modificacion": "2024-03-01 09:00:00", "Asunto": "bad"},
		{"Hora de creacion": "2024-03-01 08:00:00", "Hora de modificacion": "", "Asunto": "bad too"},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tickets) != 1 {
		t.Fatalf("expected 1 surviving ticket, got %d", len(res.Tickets))
	}
	if res.RowsDropped != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", res.RowsDropped)
	}
}

func TestNormalizeNullLiteralsAndFCR(t *testing.T) {
	headers := []string{"Hora de creacion", "Hora de modificacion", "Estado", "Is First Call Resolution", "Número de reasignaciones"}
	rows := []map[string]string{
		{
			"Hora de creacion":         "2024-03-01 08:00:00",
			"Hora de modificacion":     "2024-03-01 09:00:00",
			"Estado":                   "NULL",
			"Is First Call Resolution": "Si",
			"Número de reasignaciones": "3",
		},
		{
			"Hora de creacion":         "2024-03-02 08:00:00",
			"Hora de modificacion":     "2024-03-02 09:00:00",
			"Estado":                   "Closed",
			"Is First Call Resolution": "nope",
			"Número de reasignaciones": "muchas",
		},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, second := res.Tickets[0], res.Tickets[1]
	if first.Status != nil {
		t.Fatalf(`expected literal "NULL" to map to nil, got %v`, *first.Status)
	}
	if !first.IsFirstCallResolution {
		t.Fatalf(`expected "Si" to coerce FCR true`)
	}
	if first.Reassignments == nil || *first.Reassignments != 3 {
		t.Fatalf("expected reassignments=3, got %v", first.Reassignments)
	}
	if second.IsFirstCallResolution {
		t.Fatalf("expected unrecognized FCR value to coerce false")
	}
	if second.Reassignments != nil {
		t.Fatalf("expected unparseable reassignments to be nil, got %v", *second.Reassignments)
	}
}

func TestNormalizeYearDerivedFromCreation(t *testing.T) {
	headers := []string{"Hora de creacion", "Hora de modificacion"}
	rows := []map[string]string{
		{"Hora de creacion": "2023-07-15 10:00:00", "Hora de modificacion": "2023-07-16 10:00:00"},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tickets[0].Year != 2023 {
		t.Fatalf("expected year 2023, got %d", res.Tickets[0].Year)
	}
}

func TestNormalizePassthroughColumns(t *testing.T) {
	headers := []string{"\uFEFFHora de creacion", "Hora de modificacion", "Canal De Entrada"}
	rows := []map[string]string{
		{
			"\uFEFFHora de creacion": "2024-01-01 10:00:00",
			"Hora de modificacion":   "2024-01-01 11:00:00",
			"Canal De Entrada":       "Email",
		},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ticket := res.Tickets[0]
	v, ok := ticket.Extra["canal_de_entrada"]
	if !ok || v == nil || *v != "Email" {
		t.Fatalf("expected passthrough column under snake_case key, got %v", ticket.Extra)
	}
}

func TestNormalizeEmptyResultIsNotAnError(t *testing.T) {
	headers := []string{"Hora de creacion", "Hora de modificacion"}
	rows := []map[string]string{
		{"Hora de creacion": "bad", "Hora de modificacion": "worse"},
	}

	res, err := Normalize(headers, rows, DefaultTables())
	if err != nil {
		t.Fatalf("expected success with zero tickets, got %v", err)
	}
	if len(res.Tickets) != 0 || res.RowsDropped != 1 {
		t.Fatalf("expected empty result with 1 dropped row, got %+v", res)
	}
}
