package entry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/klokku/budgettracker/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, func()) {
	repo := NewRepositoryStub()
	handler := NewHandler(NewService(repo, catalog, event_bus.NewEventBus()))
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id := req.Header.Get("X-User-Id"); id != "" {
				req = req.WithContext(user.WithId(req.Context(), id))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.HandleFunc("/api/entries", handler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/entries/{entryId}", handler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/entries/{entryId}", handler.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/api/categories", handler.ListCategories).Methods("GET")
	return r, repo.Cleanup
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-User-Id", "owner-1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CreateEntry(t *testing.T) {
	t.Run("should create entry", func(t *testing.T) {
		r, teardown := newTestRouter(t)
		defer teardown()

		// when
		rr := doRequest(r, "POST", "/api/entries",
			`{"date":"2025-03-10","type":"depenses_variables","category":"courses","amount":"12.50","description":""}`)

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		var dto EntryDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.NotEmpty(t, dto.Id)
		assert.Equal(t, "2025-03-10", dto.Date)
		assert.Equal(t, "Courses", dto.CategoryLabel)
		assert.Equal(t, "12.5", dto.Amount.String())
	})

	t.Run("should reject invalid category with 400", func(t *testing.T) {
		r, teardown := newTestRouter(t)
		defer teardown()

		rr := doRequest(r, "POST", "/api/entries",
			`{"date":"2025-03-10","type":"revenus","category":"courses","amount":"12.50"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "category")
	})

	t.Run("should reject malformed date with 400", func(t *testing.T) {
		r, teardown := newTestRouter(t)
		defer teardown()

		rr := doRequest(r, "POST", "/api/entries",
			`{"date":"10/03/2025","type":"revenus","category":"salaire","amount":"12.50"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return 403 without user", func(t *testing.T) {
		r, teardown := newTestRouter(t)
		defer teardown()

		req := httptest.NewRequest("POST", "/api/entries",
			strings.NewReader(`{"date":"2025-03-10","type":"revenus","category":"salaire","amount":"1"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestHandler_CreateEntry_IgnoresRecurringFlag(t *testing.T) {
	r, teardown := newTestRouter(t)
	defer teardown()

	// when
	rr := doRequest(r, "POST", "/api/entries",
		`{"date":"2025-03-10","type":"depenses_variables","category":"courses","amount":"12","isRecurring":true}`)

	// then
	require.Equal(t, http.StatusCreated, rr.Code)
	var dto EntryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.False(t, dto.IsRecurring)
}

func TestHandler_UpdateAndDeleteEntry(t *testing.T) {
	r, teardown := newTestRouter(t)
	defer teardown()

	// given
	rr := doRequest(r, "POST", "/api/entries",
		`{"date":"2025-03-10","type":"epargne","category":"livret_a","amount":"100"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created EntryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	// when
	updated := doRequest(r, "PUT", "/api/entries/"+created.Id,
		`{"date":"2025-03-11","type":"epargne","category":"ldds","amount":"120"}`)
	deleted := doRequest(r, "DELETE", "/api/entries/"+created.Id, "")
	deletedAgain := doRequest(r, "DELETE", "/api/entries/"+created.Id, "")

	// then
	assert.Equal(t, http.StatusOK, updated.Code)
	assert.Contains(t, updated.Body.String(), `"category":"ldds"`)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Equal(t, http.StatusNotFound, deletedAgain.Code)
}

func TestHandler_ListCategories(t *testing.T) {
	r, teardown := newTestRouter(t)
	defer teardown()

	rr := doRequest(r, "GET", "/api/categories", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var result []TypeCategoriesDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, len(AllTypes))
	assert.Equal(t, Revenus, result[0].Type)
	assert.Equal(t, "salaire", result[0].Categories[0].Key)
}

func TestHandler_UpdateUnknownEntry(t *testing.T) {
	r, teardown := newTestRouter(t)
	defer teardown()

	rr := doRequest(r, "PUT", "/api/entries/unknown",
		`{"date":"2025-03-11","type":"epargne","category":"ldds","amount":"120"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
