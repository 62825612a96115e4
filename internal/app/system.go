package app

import (
	"context"
	"net/http"
	"time"

	"github.com/mabinihs/portal/docs"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/router"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag/v2"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type healthResponse struct {
	Status string    `json:"status" example:"healthy"`
	Time   time.Time `json:"time"`
}

func (r healthResponse) Message() string {
	if r.Status != "healthy" {
		return "Service degraded"
	}
	return "ok"
}

func (r healthResponse) StatusCode() int {
	if r.Status != "healthy" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

type rootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

func (rootResponse) Message() string { return "Mabini HS portal API" }

// healthHandler pings every dependency with a short deadline.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func healthHandler(clk clock.Clocker, deps map[string]pinger) router.Handler {
	return func(r *router.Request) (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		for _, p := range deps {
			if err := p.Ping(ctx); err != nil {
				status = "degraded"
				break
			}
		}

		return healthResponse{Status: status, Time: clk.Now()}, nil
	}
}

func (a *App) registerSystemRoutes() {
	deps := map[string]pinger{}
	if a.dbConn != nil {
		deps["database"] = a.dbConn
	}
	if a.cacheConn != nil {
		deps["redis"] = pingFunc(func(ctx context.Context) error { return a.cacheConn.Ping(ctx).Err() })
	}

	a.router.GET("/", func(*router.Request) (any, error) {
		return rootResponse{
			Service: a.config.GetString("instrument.service_name"),
			Version: a.config.GetString("instrument.service_version"),
		}, nil
	})

	a.router.GET("/health", healthHandler(a.clock, deps))

	if !a.config.GetBool("app.server.docs") {
		return
	}

	docs.SwaggerInfo.Host = a.config.GetString("app.server.docs_host")
	a.router.GETRaw("/swagger/doc.json", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	}))
	a.router.GETRaw("/docs/*any", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(false),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))
}
