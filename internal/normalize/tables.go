package normalize

// Canonical field names used across the pipeline.
const (
	FieldID                    = "id"
	FieldAsunto                = "asunto"
	FieldTicketOwnerName       = "ticket_owner_name"
	FieldUltimoAgente          = "ultimo_agente"
	FieldStatus                = "status"
	FieldCreationTime          = "creation_time"
	FieldModificationTime      = "modification_time"
	FieldReassignments         = "reassignments"
	FieldIsFirstCallResolution = "is_first_call_resolution"
	FieldCategory              = "category"
	FieldSubCategory           = "sub_category"
	FieldRegionalSede          = "regional_sede"
	FieldPrograma              = "programa"
	FieldSentiment             = "sentiment"
	FieldVencido               = "vencido"
	FieldYear                  = "year"
)

// Tables bundles the lookup data the normalizer works with. Built once at
// startup and never mutated; tests substitute their own copies.
type Tables struct {
	// Aliases maps a canonicalized header key (lower-case, underscores as
	// spaces, trimmed) to one or more canonical field names. A single source
	// column may populate several fields.
	Aliases map[string][]string

	// DateLayouts are tried in order when coercing date-time cells.
	DateLayouts []string

	// FCRTruthy are the values (lower-cased) that coerce the
	// first-call-resolution flag to true.
	FCRTruthy []string

	// RequiredLabels are the display names reported when the required date
	// columns are missing.
	RequiredLabels []string
}

// DefaultTables returns the production lookup tables.
func DefaultTables() Tables {
	return Tables{
		Aliases: map[string][]string{
			"id":     {FieldID},
			"asunto": {FieldAsunto},
			// legacy column for the Licencia filter
			"department name": {FieldTicketOwnerName},
			// populates both the agent rollups and the Licencia filter
			"ticket owner name":        {FieldTicketOwnerName, FieldUltimoAgente},
			"ultimo agente":            {FieldUltimoAgente},
			"estado":                   {FieldStatus},
			"status":                   {FieldStatus},
			"hora de creación":         {FieldCreationTime},
			"hora de creacion":         {FieldCreationTime},
			"creation time":            {FieldCreationTime},
			"hora de modificación":     {FieldModificationTime},
			"hora de modificacion":     {FieldModificationTime},
			"modification time":        {FieldModificationTime},
			"número de reasignaciones": {FieldReassignments},
			"numero de reasignaciones": {FieldReassignments},
			"is first call resolution": {FieldIsFirstCallResolution},
			"solicitud":                {FieldCategory},
			"categoria":                {FieldCategory},
			"categoría":                {FieldCategory},
			"sub categorias":           {FieldSubCategory},
			"sub categorías":           {FieldSubCategory},
			"regional sede":            {FieldRegionalSede},
			"programa":                 {FieldPrograma},
			"sentimiento":              {FieldSentiment},
			"sentiment":                {FieldSentiment},
			"vencido":                  {FieldVencido},
		},
		DateLayouts: []string{
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
			"02/01/2006 15:04:05",
			"02/01/2006 15:04",
			"02/01/2006",
		},
		FCRTruthy:      []string{"true", "1", "yes", "si", "verdadero"},
		RequiredLabels: []string{"Hora_de_creación", "Hora_de_modificación"},
	}
}
