package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/budgettracker/internal/rest"
	"github.com/klokku/budgettracker/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Id            string          `json:"id"`
	Date          string          `json:"date"`
	Type          EntryType       `json:"type"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"categoryLabel,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	IsRecurring   bool            `json:"isRecurring"`
}

type CategoryDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type TypeCategoriesDTO struct {
	Type       EntryType     `json:"type"`
	Label      string        `json:"label"`
	Categories []CategoryDTO `json:"categories"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateEntry godoc
// @Summary Create a budget entry
// @Tags Entry
// @Accept json
// @Produce json
// @Param entry body EntryDTO true "Entry"
// @Success 201 {object} EntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid entry"
// @Failure 403 {string} string "User not found"
// @Router /api/entries [post]
// @Security XUserId
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), e)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created, h.service.Catalog()))
}

// UpdateEntry godoc
// @Summary Update a budget entry
// @Tags Entry
// @Accept json
// @Produce json
// @Param entryId path string true "Entry ID"
// @Param entry body EntryDTO true "Entry"
// @Success 200 {object} EntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid entry"
// @Failure 404 {string} string "Entry not found"
// @Router /api/entries/{entryId} [put]
// @Security XUserId
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	e.Id = mux.Vars(r)["entryId"]
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated, h.service.Catalog()))
}

// DeleteEntry godoc
// @Summary Delete a budget entry
// @Tags Entry
// @Param entryId path string true "Entry ID"
// @Success 204
// @Failure 404 {string} string "Entry not found"
// @Router /api/entries/{entryId} [delete]
// @Security XUserId
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryId := mux.Vars(r)["entryId"]
	if err := h.service.Delete(r.Context(), entryId); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List entry types with their categories
// @Tags Entry
// @Produce json
// @Success 200 {array} TypeCategoriesDTO
// @Router /api/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	result := make([]TypeCategoriesDTO, 0, len(AllTypes))
	for _, t := range AllTypes {
		categories := make([]CategoryDTO, 0)
		for _, c := range catalog.Categories(t) {
			categories = append(categories, CategoryDTO{Key: c.Key, Label: c.Label})
		}
		result = append(result, TypeCategoriesDTO{Type: t, Label: t.Label(), Categories: categories})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeEntry(w http.ResponseWriter, r *http.Request) (Entry, bool) {
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return Entry{}, false
	}
	date, err := ParseDate(dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "Date must be in YYYY-MM-DD format")
		return Entry{}, false
	}
	return Entry{
		Id:          dto.Id,
		Date:        date,
		Type:        dto.Type,
		Category:    dto.Category,
		Amount:      dto.Amount,
		Description: dto.Description,
	}, true
}

func ToDTO(e Entry, catalog *Catalog) EntryDTO {
	return EntryDTO{
		Id:            e.Id,
		Date:          e.Date.Format(DateLayout),
		Type:          e.Type,
		Category:      e.Category,
		CategoryLabel: catalog.Label(e.Category),
		Amount:        e.Amount,
		Description:   e.Description,
		IsRecurring:   e.IsRecurring,
	}
}

// WriteServiceError maps ledger errors to HTTP statuses. Shared by every ledger handler.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		rest.WriteError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "User not found", http.StatusForbidden)
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, "Entry not found", http.StatusNotFound)
	default:
		log.Errorf("request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
