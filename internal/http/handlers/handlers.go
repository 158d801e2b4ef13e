package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/soporte-insights/backend/internal/ai"
	"github.com/soporte-insights/backend/internal/analytics"
	"github.com/soporte-insights/backend/internal/dataset"
	"github.com/soporte-insights/backend/internal/models"
	"github.com/soporte-insights/backend/internal/normalize"
)

type Handler struct {
	Store     *dataset.Store
	Assistant ai.Assistant
	Validator *validator.Validate
	Logger    zerolog.Logger
	Tables    normalize.Tables
	Delimiter rune
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datasets": h.Store.Len()})
}

// @Summary Upload a ticket CSV
// @Description Parses and normalizes a delimited ticket export and stores it for the session
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "tickets.csv"
// @Param delimiter formData string false "field delimiter, default ;"
// @Success 200 {object} dataset.Dataset
// @Failure 400 {object} map[string]any
// @Router /api/datasets [post]
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required", nil)
		return
	}
	if !validateExt(file.Filename) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file must be .csv", nil)
		return
	}

	delimiter := h.Delimiter
	if d := c.PostForm("delimiter"); d != "" {
		delimiter = rune(d[0])
	}

	headers, rows, err := readCSV(file, delimiter)
	if err != nil {
		writeError(c, http.StatusBadRequest, "CSV_PARSE_ERROR", "failed to parse CSV", err.Error())
		return
	}

	result, err := normalize.Normalize(headers, rows, h.Tables)
	if err != nil {
		var dup *normalize.DuplicateColumnsError
		if errors.As(err, &dup) {
			writeError(c, http.StatusBadRequest, "DUPLICATE_COLUMNS",
				"duplicate columns found, rename them to be unique", dup.Columns)
			return
		}
		var missing *normalize.MissingColumnsError
		if errors.As(err, &missing) {
			writeError(c, http.StatusBadRequest, "MISSING_REQUIRED_COLUMNS",
				"file must contain the required date columns", missing.Required)
			return
		}
		writeError(c, http.StatusBadRequest, "NORMALIZATION_ERROR", "failed to normalize file", err.Error())
		return
	}

	// structurally valid but nothing survived: recoverable, distinct from a
	// malformed file
	if len(result.Tickets) == 0 {
		writeError(c, http.StatusUnprocessableEntity, "EMPTY_DATASET",
			"no valid tickets found in file", gin.H{
				"rows_read":    result.RowsRead,
				"rows_dropped": result.RowsDropped,
			})
		return
	}

	d := h.Store.Put(file.Filename, result.Tickets, result.RowsRead, result.RowsDropped, analytics.Years(result.Tickets))
	h.Logger.Info().
		Str("dataset_id", d.ID).
		Str("file", d.FileName).
		Int("tickets", d.TicketCount).
		Int("dropped", d.RowsDropped).
		Msg("dataset stored")
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DatasetInfo(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DatasetDelete(c *gin.Context) {
	if !h.Store.Delete(c.Param("id")) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Dataset not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) Filters(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filters":          analytics.AvailableFilters(d.Tickets),
		"comparison_years": analytics.DeriveComparisonYears(d.Tickets),
	})
}

// @Summary Full analytics bundle
// @Tags analytics
// @Produce json
// @Param id path string true "dataset id, or latest"
// @Param compare query bool false "year-over-year comparison"
// @Success 200 {object} analytics.Bundle
// @Router /api/datasets/{id}/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.ComputeBundle(tickets, compare, years))
}

func (h *Handler) Summary(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateKpiResult(tickets, compare, years))
}

func (h *Handler) Temporal(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateTemporal(tickets, compare, years))
}

func (h *Handler) Classification(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateClassification(tickets, compare, years))
}

func (h *Handler) Efficiency(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateEfficiency(tickets, compare, years))
}

func (h *Handler) Text(c *gin.Context) {
	tickets, _, _, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateText(tickets))
}

func (h *Handler) Correlation(c *gin.Context) {
	tickets, _, _, ok := h.sectionInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateCorrelation(tickets))
}

type InsightsRequest struct {
	Section string           `json:"section" validate:"omitempty,oneof=general correlation"`
	History []ai.ChatMessage `json:"history" validate:"dive"`
}

// @Summary Generate prose commentary for the current analytics
// @Tags insights
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/datasets/{id}/insights [post]
func (h *Handler) Insights(c *gin.Context) {
	tickets, compare, years, ok := h.sectionInput(c)
	if !ok {
		return
	}

	var req InsightsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
		if err := h.Validator.Struct(req); err != nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
			return
		}
	}

	bundle := analytics.ComputeBundle(tickets, compare, years)
	var prompt string
	switch req.Section {
	case "correlation":
		prompt = ai.BuildCorrelationPrompt(bundle.Correlation)
	default:
		prompt = ai.BuildGeneralPrompt(bundle)
	}
	answer, err := h.Assistant.Ask(c.Request.Context(), prompt, req.History)
	if err != nil {
		var rate ai.RateLimitError
		if errors.As(err, &rate) {
			writeError(c, http.StatusTooManyRequests, "RATE_LIMITED", err.Error(), nil)
			return
		}
		h.Logger.Error().Err(err).Msg("insight generation failed")
		writeError(c, http.StatusBadGateway, "ASSISTANT_ERROR", "Failed to generate insights", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": answer})
}

func (h *Handler) lookup(c *gin.Context) (*dataset.Dataset, bool) {
	id := c.Param("id")
	var d *dataset.Dataset
	var ok bool
	if id == "" || id == "latest" {
		d, ok = h.Store.Latest()
	} else {
		d, ok = h.Store.Get(id)
	}
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Dataset not found", nil)
		return nil, false
	}
	return d, true
}

// sectionInput resolves the dataset, applies the active filters and derives
// the comparison configuration shared by every analytics endpoint.
func (h *Handler) sectionInput(c *gin.Context) ([]models.Ticket, bool, *models.ComparisonYears, bool) {
	d, ok := h.lookup(c)
	if !ok {
		return nil, false, nil, false
	}

	filters := map[string][]string{}
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "filter.") {
			filters[strings.TrimPrefix(key, "filter.")] = values
		}
	}
	tickets := analytics.ApplyFilters(d.Tickets, filters)

	years := analytics.DeriveComparisonYears(d.Tickets)
	compareParam := c.Query("compare")
	compare := (compareParam == "1" || strings.EqualFold(compareParam, "true")) && years != nil

	return tickets, compare, years, true
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func readCSV(file *multipart.FileHeader, delimiter rune) ([]string, []map[string]string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, errors.New("failed to read header")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []map[string]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(rec) {
				row[header] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func validateExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".csv"
}
