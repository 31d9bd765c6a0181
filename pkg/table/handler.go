package table

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
)

type PageDTO struct {
	Items      []entry.EntryDTO `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ListEntries godoc
// @Summary Filtered, sorted and paginated ledger entries
// @Tags Entry
// @Produce json
// @Param year query int false "Year, every year when omitted"
// @Param type query string false "Entry type or all"
// @Param sortBy query string false "date (default) or amount"
// @Param sortOrder query string false "asc or desc (default)"
// @Param page query int false "Page number starting at 1"
// @Param pageSize query int false "Page size"
// @Success 200 {object} PageDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid query"
// @Router /api/entries [get]
// @Security XUserId
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	page, err := h.service.Query(r.Context(), q)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	items := make([]entry.EntryDTO, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, entry.ToDTO(e, h.service.Catalog()))
	}
	rest.WriteJSON(w, http.StatusOK, PageDTO{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// ExportEntries godoc
// @Summary Export ledger entries as CSV
// @Tags Entry
// @Produce text/csv
// @Param year query int false "Year, every year when omitted"
// @Param type query string false "Entry type or all"
// @Success 200 {string} string "CSV file"
// @Router /api/entries/export [get]
// @Security XUserId
func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	csv, err := h.service.Export(r.Context(), q)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(h.clock.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

func parseQuery(values url.Values) (Query, error) {
	q := Query{
		FilterType: values.Get("type"),
		SortBy:     SortBy(values.Get("sortBy")),
		SortOrder:  SortOrder(values.Get("sortOrder")),
	}
	var err error
	if q.Year, err = intParam(values, "year"); err != nil {
		return Query{}, err
	}
	if q.Page, err = intParam(values, "page"); err != nil {
		return Query{}, err
	}
	if q.PageSize, err = intParam(values, "pageSize"); err != nil {
		return Query{}, err
	}
	return q, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, entry.NewValidationError(name, "expected a positive number, got "+raw)
	}
	return n, nil
}
