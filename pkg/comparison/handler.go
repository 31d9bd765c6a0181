package comparison

import (
	"net/http"

	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

type RowDTO struct {
	Key             string              `json:"key"`
	Label           string              `json:"label"`
	Value1          decimal.Decimal     `json:"value1"`
	Value2          decimal.Decimal     `json:"value2"`
	Difference      decimal.Decimal     `json:"difference"`
	Percentage      decimal.NullDecimal `json:"percentage"`
	PercentageLabel string              `json:"percentageLabel"`
	Improved        bool                `json:"improved"`
}

type ReportDTO struct {
	Mode    Mode     `json:"mode"`
	Period1 string   `json:"period1"`
	Period2 string   `json:"period2"`
	Rows    []RowDTO `json:"rows"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Compare godoc
// @Summary Compare two periods by entry type or by category
// @Tags Comparison
// @Produce json
// @Param mode query string false "type (default) or category"
// @Param p1 query string true "First period: 2025, 2025-03 or 2025-Q1"
// @Param p2 query string true "Second period: 2025, 2025-03 or 2025-Q1"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period or mode"
// @Router /api/comparison [get]
// @Security XUserId
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode, err := ParseMode(query.Get("mode"))
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	p1, err := entry.ParsePeriod(query.Get("p1"))
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	p2, err := entry.ParsePeriod(query.Get("p2"))
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}

	report, err := h.service.Compare(r.Context(), mode, p1, p2)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, reportToDTO(report))
}

func reportToDTO(report Report) ReportDTO {
	rows := make([]RowDTO, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, RowDTO{
			Key:             row.Key,
			Label:           row.Label,
			Value1:          row.Diff.Value1,
			Value2:          row.Diff.Value2,
			Difference:      row.Diff.Difference,
			Percentage:      row.Diff.Percentage,
			PercentageLabel: row.Diff.PercentageLabel(),
			Improved:        row.Diff.Improved,
		})
	}
	return ReportDTO{
		Mode:    report.Mode,
		Period1: report.Period1.String(),
		Period2: report.Period2.String(),
		Rows:    rows,
	}
}
