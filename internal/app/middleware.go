package app

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klokku/budgettracker/pkg/user"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ownerId := strings.TrimSpace(req.Header.Get(userIdHeader))
			if ownerId == "" {
				if strings.HasPrefix(req.URL.Path, "/api/") {
					log.Debugf("missing %s header on %s %s", userIdHeader, req.Method, req.URL.Path)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, req)
				return
			}
			log.Tracef("request %s %s for %s", req.Method, req.URL.Path, ownerId)
			next.ServeHTTP(w, req.WithContext(user.WithId(req.Context(), ownerId)))
		})
	})
}
