package recurring

import (
	"encoding/json"
	"net/http"

	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

type RuleDTO struct {
	Id            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"categoryLabel,omitempty"`
	DayOfMonth    int             `json:"dayOfMonth"`
}

type Handler struct {
	service Service
	catalog *entry.Catalog
}

func NewHandler(service Service, catalog *entry.Catalog) *Handler {
	return &Handler{service: service, catalog: catalog}
}

// GetRules godoc
// @Summary List recurring fixed expenses
// @Tags Recurring
// @Produce json
// @Success 200 {array} RuleDTO
// @Router /api/recurring/rules [get]
// @Security XUserId
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.GetRules(r.Context())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTOs(rules))
}

// SaveRules godoc
// @Summary Replace the recurring fixed expenses
// @Tags Recurring
// @Accept json
// @Produce json
// @Param rules body []RuleDTO true "Rules"
// @Success 200 {array} RuleDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid rule"
// @Router /api/recurring/rules [put]
// @Security XUserId
func (h *Handler) SaveRules(w http.ResponseWriter, r *http.Request) {
	var dtos []RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	rules := make([]Rule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, Rule{Id: dto.Id, Amount: dto.Amount, Category: dto.Category, DayOfMonth: dto.DayOfMonth})
	}
	saved, err := h.service.SaveRules(r.Context(), rules)
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTOs(saved))
}

// Materialize godoc
// @Summary Insert this month's recurring fixed expenses into the ledger
// @Tags Recurring
// @Produce json
// @Success 200 {array} entry.EntryDTO "Created entries, empty when the month is already done"
// @Router /api/recurring/materialize [post]
// @Security XUserId
func (h *Handler) Materialize(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.MaterializeCurrentMonth(r.Context())
	if err != nil {
		entry.WriteServiceError(w, err)
		return
	}
	result := make([]entry.EntryDTO, 0, len(created))
	for _, e := range created {
		result = append(result, entry.ToDTO(e, h.catalog))
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) toDTOs(rules []Rule) []RuleDTO {
	result := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		result = append(result, RuleDTO{
			Id:            rule.Id,
			Amount:        rule.Amount,
			Category:      rule.Category,
			CategoryLabel: h.catalog.Label(rule.Category),
			DayOfMonth:    rule.DayOfMonth,
		})
	}
	return result
}
