package budget_limit

import (
	"encoding/json"
	"net/http"

	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

type ProgressDTO struct {
	Spent      decimal.Decimal  `json:"spent"`
	Limit      *decimal.Decimal `json:"limit,omitempty"`
	Remaining  *decimal.Decimal `json:"remaining,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	OverBudget bool             `json:"overBudget"`
	Configured bool             `json:"configured"`
}

type CategoryProgressDTO struct {
	Type          entry.EntryType `json:"type"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"categoryLabel"`
	ProgressDTO
}

type OverviewDTO struct {
	Month      string                `json:"month"`
	Categories []CategoryProgressDTO `json:"categories"`
	LongTerm   struct {
		Epargne         ProgressDTO `json:"epargne"`
		Investissements ProgressDTO `json:"investissements"`
	} `json:"longTerm"`
}

type Handler struct {
	service Service
	catalog *entry.Catalog
}

func NewHandler(service Service, catalog *entry.Catalog) *Handler {
	return &Handler{service: service, catalog: catalog}
}

// GetLimits godoc
// @Summary Get monthly limits and long-term goals
// @Tags Limits
// @Produce json
// @Success 200 {object} Config
// @Router /api/limits [get]
// @Security XUserId
func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, cfg)
}

// SaveLimits godoc
// @Summary Replace monthly limits and long-term goals
// @Tags Limits
// @Accept json
// @Produce json
// @Param limits body Config true "Limits"
// @Success 200 {object} Config
// @Failure 400 {object} rest.ErrorResponse "Invalid limits"
// @Router /api/limits [put]
// @Security XUserId
func (h *Handler) SaveLimits(w http.ResponseWriter, r *http.Request) {
	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	saved, err := h.service.SaveConfig(r.Context(), cfg)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, saved)
}

// GetProgress godoc
// @Summary Progress of the current month against every configured limit
// @Tags Limits
// @Produce json
// @Success 200 {object} OverviewDTO
// @Router /api/limits/progress [get]
// @Security XUserId
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	dto := OverviewDTO{
		Month:      overview.Month.Format("2006-01"),
		Categories: make([]CategoryProgressDTO, 0, len(overview.Categories)),
	}
	for _, c := range overview.Categories {
		dto.Categories = append(dto.Categories, CategoryProgressDTO{
			Type:          c.Type,
			Category:      c.Category,
			CategoryLabel: h.catalog.Label(c.Category),
			ProgressDTO:   toProgressDTO(c.Progress),
		})
	}
	dto.LongTerm.Epargne = toProgressDTO(overview.Epargne)
	dto.LongTerm.Investissements = toProgressDTO(overview.Investissements)
	rest.WriteJSON(w, http.StatusOK, dto)
}

// Unconfigured progress only carries what was spent.
func toProgressDTO(p Progress) ProgressDTO {
	dto := ProgressDTO{Spent: p.Spent, Configured: p.Configured}
	if p.Configured {
		percentage := p.Percentage.Round(1)
		dto.Limit = &p.Limit
		dto.Remaining = &p.Remaining
		dto.Percentage = &percentage
		dto.OverBudget = p.OverBudget
	}
	return dto
}
