package router

import (
	"net/http"
	"sync/atomic"

	"github.com/mabinihs/portal/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. The list is re-read when the config file changes.
func middlewareMaintenance(cfg config.Config) Middleware {
	var blocked atomic.Pointer[map[string]struct{}]

	load := func() {
		set := make(map[string]struct{})
		if cfg != nil {
			for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
				set[endpoint] = struct{}{}
			}
		}
		blocked.Store(&set)
	}
	load()
	if cfg != nil {
		cfg.OnChange(load)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, hit := (*blocked.Load())[matchedRoutePath(r)]; hit {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
