package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Ledger
	r.HandleFunc("/api/categories", deps.EntryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/entries", deps.TableHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/entries", deps.EntryHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/entries/export", deps.TableHandler.ExportEntries).Methods("GET")
	r.HandleFunc("/api/entries/{entryId}", deps.EntryHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/entries/{entryId}", deps.EntryHandler.DeleteEntry).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats/monthly", deps.StatsHandler.GetMonthly).Methods("GET")
	r.HandleFunc("/api/stats/yearly", deps.StatsHandler.GetYearly).Methods("GET")
	r.HandleFunc("/api/stats/categories", deps.StatsHandler.GetCategories).Methods("GET")
	r.HandleFunc("/api/stats/years", deps.StatsHandler.GetYears).Methods("GET")

	// Comparison
	r.HandleFunc("/api/comparison", deps.ComparisonHandler.Compare).Methods("GET")

	// Recurring fixed expenses
	r.HandleFunc("/api/recurring/rules", deps.RecurringHandler.GetRules).Methods("GET")
	r.HandleFunc("/api/recurring/rules", deps.RecurringHandler.SaveRules).Methods("PUT")
	r.HandleFunc("/api/recurring/materialize", deps.RecurringHandler.Materialize).Methods("POST")

	// Limits
	r.HandleFunc("/api/limits", deps.LimitHandler.GetLimits).Methods("GET")
	r.HandleFunc("/api/limits", deps.LimitHandler.SaveLimits).Methods("PUT")
	r.HandleFunc("/api/limits/progress", deps.LimitHandler.GetProgress).Methods("GET")
}
