package stats

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

type TypeTotalsDTO struct {
	Revenus           decimal.Decimal `json:"revenus"`
	DepensesFixes     decimal.Decimal `json:"depenses_fixes"`
	DepensesVariables decimal.Decimal `json:"depenses_variables"`
	Epargne           decimal.Decimal `json:"epargne"`
	Investissements   decimal.Decimal `json:"investissements"`
}

type MonthlyBucketDTO struct {
	Month  int             `json:"month"`
	Totals TypeTotalsDTO   `json:"totals"`
	Solde  decimal.Decimal `json:"solde"`
}

type YearlyRowDTO struct {
	Year   int             `json:"year"`
	Totals TypeTotalsDTO   `json:"totals"`
	Solde  decimal.Decimal `json:"solde"`
}

type CategoryRowDTO struct {
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Color    string          `json:"color"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
	clock            utils.Clock
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer, clock utils.Clock) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer, clock}
}

// GetMonthly godoc
// @Summary Monthly totals per entry type for one year
// @Tags Stats
// @Produce json,text/csv
// @Param year query int false "Year, current year when omitted"
// @Success 200 {array} MonthlyBucketDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year"
// @Router /api/stats/monthly [get]
// @Security XUserId
func (handler *StatsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	year, ok := handler.yearParam(w, r)
	if !ok {
		return
	}
	buckets, err := handler.statsService.Monthly(r.Context(), year)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvStatsRenderer.RenderMonthly(year, buckets)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(csv))
		return
	}

	result := make([]MonthlyBucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, MonthlyBucketDTO{
			Month:  int(bucket.Month),
			Totals: totalsToDTO(bucket.Totals),
			Solde:  bucket.Solde,
		})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// GetYearly godoc
// @Summary Yearly totals per entry type
// @Tags Stats
// @Produce json
// @Param years query string false "Comma separated years, every ledger year when omitted"
// @Success 200 {array} YearlyRowDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid years"
// @Router /api/stats/yearly [get]
// @Security XUserId
func (handler *StatsHandler) GetYearly(w http.ResponseWriter, r *http.Request) {
	years := make([]int, 0)
	if raw := strings.TrimSpace(r.URL.Query().Get("years")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			year, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				rest.WriteError(w, http.StatusBadRequest, "Invalid years", "years must be a comma separated list of years")
				return
			}
			years = append(years, year)
		}
	}
	rows, err := handler.statsService.Yearly(r.Context(), years)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	result := make([]YearlyRowDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, YearlyRowDTO{Year: row.Year, Totals: totalsToDTO(row.Totals), Solde: row.Solde})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// GetCategories godoc
// @Summary Category breakdown for one year
// @Tags Stats
// @Produce json
// @Param year query int false "Year, current year when omitted"
// @Param expensesOnly query bool false "Keep expenses only, largest first"
// @Param limit query int false "Maximum number of expense rows"
// @Success 200 {array} CategoryRowDTO
// @Router /api/stats/categories [get]
// @Security XUserId
func (handler *StatsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	year, ok := handler.yearParam(w, r)
	if !ok {
		return
	}
	expensesOnly := r.URL.Query().Get("expensesOnly") == "true"
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive number")
			return
		}
		limit = parsed
	}
	rows, err := handler.statsService.Categories(r.Context(), year, expensesOnly, limit)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	result := make([]CategoryRowDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, CategoryRowDTO{
			Name:     row.Name,
			Value:    row.Value,
			Type:     string(row.Type),
			Category: row.Category,
			Color:    row.Color,
		})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// GetYears godoc
// @Summary Years present in the ledger, most recent first
// @Tags Stats
// @Produce json
// @Success 200 {array} int
// @Router /api/stats/years [get]
// @Security XUserId
func (handler *StatsHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := handler.statsService.Years(r.Context())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, years)
}

func (handler *StatsHandler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return handler.clock.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be a number like 2025")
		return 0, false
	}
	return year, true
}

func totalsToDTO(totals TypeTotals) TypeTotalsDTO {
	return TypeTotalsDTO{
		Revenus:           totals[entry.Revenus],
		DepensesFixes:     totals[entry.DepensesFixes],
		DepensesVariables: totals[entry.DepensesVariables],
		Epargne:           totals[entry.Epargne],
		Investissements:   totals[entry.Investissements],
	}
}
