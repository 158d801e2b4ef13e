package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/soporte-insights/backend/internal/models"
)

// DuplicateColumnsError reports two or more source headers collapsing onto
// the same canonical key. Fatal to the normalization pass.
type DuplicateColumnsError struct {
	// Columns holds the original header names, grouped per duplicated key.
	Columns []string
}

func (e *DuplicateColumnsError) Error() string {
	return fmt.Sprintf("duplicate columns: %s", strings.Join(e.Columns, ", "))
}

// MissingColumnsError reports the absence of a required date column.
type MissingColumnsError struct {
	Required []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Required, ", "))
}

// Result is the outcome of a successful normalization pass. Tickets may be
// empty even on success; callers treat that as a distinct recoverable
// condition, not a format failure.
type Result struct {
	Tickets     []models.Ticket
	RowsRead    int
	RowsDropped int
}

// Normalize maps raw headers to canonical fields and coerces every row into
// a typed Ticket. Pure transform: no side effects, input untouched.
func Normalize(headers []string, rows []map[string]string, tables Tables) (Result, error) {
	keys := make([]string, len(headers))
	byKey := map[string][]string{}
	for i, h := range headers {
		k := CanonicalKey(h)
		keys[i] = k
		byKey[k] = append(byKey[k], h)
	}

	var dupKeys []string
	for k, originals := range byKey {
		if len(originals) > 1 {
			dupKeys = append(dupKeys, k)
		}
	}
	sort.Strings(dupKeys)
	var dupes []string
	for _, k := range dupKeys {
		dupes = append(dupes, byKey[k]...)
	}
	if len(dupes) > 0 {
		return Result{}, &DuplicateColumnsError{Columns: dupes}
	}

	hasCreation := false
	hasModification := false
	for _, k := range keys {
		for _, field := range targetsFor(k, tables) {
			switch field {
			case FieldCreationTime:
				hasCreation = true
			case FieldModificationTime:
				hasModification = true
			}
		}
	}
	if !hasCreation || !hasModification {
		return Result{}, &MissingColumnsError{Required: tables.RequiredLabels}
	}

	res := Result{RowsRead: len(rows)}
	for _, row := range rows {
		t, ok := buildTicket(headers, keys, row, tables)
		if !ok {
			res.RowsDropped++
			continue
		}
		res.Tickets = append(res.Tickets, t)
	}
	return res, nil
}

// CanonicalKey normalizes a raw header for alias lookup: BOM stripped,
// lower-cased, underscores as spaces, trimmed.
func CanonicalKey(header string) string {
	h := strings.ReplaceAll(header, "\uFEFF", "")
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, "_", " ")
	return strings.TrimSpace(h)
}

func targetsFor(key string, tables Tables) []string {
	if fields, ok := tables.Aliases[key]; ok {
		return fields
	}
	// unmapped headers pass through under their snake_case name
	return []string{strings.ReplaceAll(key, " ", "_")}
}

func buildTicket(headers, keys []string, row map[string]string, tables Tables) (models.Ticket, bool) {
	var t models.Ticket
	creationOK := false
	modificationOK := false
	yearFromColumn := false
	anyValue := false

	for i, header := range headers {
		raw, present := row[header]
		value := strings.TrimSpace(raw)
		isNull := !present || value == "" || strings.EqualFold(value, "null")
		if !isNull {
			anyValue = true
		}

		for _, field := range targetsFor(keys[i], tables) {
			switch field {
			case FieldCreationTime:
				if isNull {
					continue
				}
				if ts, err := parseDate(value, tables.DateLayouts); err == nil {
					t.CreationTime = ts
					creationOK = true
				}
			case FieldModificationTime:
				if isNull {
					continue
				}
				if ts, err := parseDate(value, tables.DateLayouts); err == nil {
					t.ModificationTime = ts
					modificationOK = true
				}
			case FieldIsFirstCallResolution:
				if isNull {
					continue
				}
				t.IsFirstCallResolution = isTruthy(value, tables.FCRTruthy)
			case FieldReassignments:
				if isNull {
					continue
				}
				if n, err := strconv.ParseFloat(value, 64); err == nil {
					t.Reassignments = &n
				}
			case FieldYear:
				if isNull {
					continue
				}
				if n, err := strconv.ParseFloat(value, 64); err == nil {
					t.Year = int(n)
					yearFromColumn = true
				}
			default:
				var v *string
				if !isNull {
					s := value
					v = &s
				}
				setStringField(&t, field, v)
			}
		}
	}

	if !creationOK || !modificationOK {
		return models.Ticket{}, false
	}
	if !anyValue {
		return models.Ticket{}, false
	}
	if !yearFromColumn || t.Year == 0 {
		t.Year = t.CreationTime.Year()
	}
	return t, true
}

func setStringField(t *models.Ticket, field string, v *string) {
	switch field {
	case FieldID:
		t.ID = v
	case FieldAsunto:
		t.Asunto = v
	case FieldTicketOwnerName:
		t.TicketOwnerName = v
	case FieldUltimoAgente:
		t.UltimoAgente = v
	case FieldStatus:
		t.Status = v
	case FieldCategory:
		t.Category = v
	case FieldSubCategory:
		t.SubCategory = v
	case FieldRegionalSede:
		t.RegionalSede = v
	case FieldPrograma:
		t.Programa = v
	case FieldSentiment:
		t.Sentiment = v
	case FieldVencido:
		t.Vencido = v
	default:
		if t.Extra == nil {
			t.Extra = map[string]*string{}
		}
		t.Extra[field] = v
	}
}

func parseDate(value string, layouts []string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isTruthy(value string, truthy []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, t := range truthy {
		if v == t {
			return true
		}
	}
	return false
}
