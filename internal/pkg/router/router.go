package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/jwt"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
	"github.com/rs/cors"
)

type errorResponse struct {
	Success bool              `json:"success" example:"false"`
	Message string            `json:"message" example:"Invalid OTP code. Please try again"`
	Code    string            `json:"code,omitempty" example:"REJECTED"`
	Expired bool              `json:"expired,omitempty"`
	Error   map[string]string `json:"error,omitempty"`
}

// Handler is the application-style handler: it returns a payload that is
// flattened into the success envelope, or an error.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	Config     config.Config
	UUID       uid.StringID
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

// Router is an http.Handler that wraps httprouter, CORS and a middleware chain.
type Router struct {
	hr      *httprouter.Router
	handler http.Handler
	jwt     jwt.JWT
	mws     []Middleware
}

// NewRouter builds the application router with the standard middleware stack.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "Endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "Method not allowed"}, http.StatusMethodNotAllowed)
		}),
		GlobalOPTIONS: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			setCORSHeaders(w.Header(), req.Header.Get("Origin") == "")
			w.WriteHeader(http.StatusOK)
		}),
	}

	r := &Router{
		hr:  hr,
		jwt: cfg.JWT,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareMaintenance(cfg.Config),
		},
	}
	r.handler = newCORS(cfg.Config).Handler(hr)

	hr.GET("/", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, map[string]any{"success": true, "message": "Mabini portal API"}, http.StatusOK)
	})

	return r
}

func newCORS(cfg config.Config) *cors.Cors {
	origins := []string{"*"}
	if cfg != nil {
		if o := cfg.GetArray("http.cors.allowed_origins"); len(o) > 0 {
			origins = o
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization", HeaderCorrelationID},
		ExposedHeaders:       []string{HeaderCorrelationID},
		OptionsSuccessStatus: http.StatusOK,
		OptionsPassthrough:   true,
	})
}

// setCORSHeaders writes the fixed preflight answer. Allow-Origin is left to
// rs/cors when the request carries an Origin, so a disallowed origin gets none.
func setCORSHeaders(h http.Header, noOrigin bool) {
	if noOrigin {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// GET registers a GET endpoint.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// GETRaw registers a GET endpoint that writes directly to the response writer.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(http.MethodGet, path, Chain(h, append(r.mws, mws...)...))
}

// POST registers a POST endpoint.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	all := append(append([]Middleware{}, r.mws...), mws...)
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			writeError(re.Context(), w, err)
			return
		}
		writeSuccess(re.Context(), w, resp)
	}), all...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unclassified handler error", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error", Code: goerror.CodeInternal.String()}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg(), Code: gerr.Code().String(), Expired: gerr.Expired()}

	var verr validator.V10ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Error = verr.Values()
	case len(gerr.Fields()) > 0:
		resp.Error = gerr.Fields()
	}

	writeJSON(w, resp, gerr.StatusCode())
}

// writeSuccess flattens resp into {"success":true,"message":...,<fields>}.
// resp may implement Message() string and StatusCode() int.
func writeSuccess(ctx context.Context, w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	body := map[string]any{}
	if resp != nil {
		raw, err := json.Marshal(resp)
		if err == nil {
			err = json.Unmarshal(raw, &body)
		}
		if err != nil {
			slog.ErrorContext(ctx, "response is not a JSON object", "error", err)
			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
			return
		}
	}

	msg := "Request processed successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	body["success"] = code < http.StatusBadRequest
	body["message"] = msg

	writeJSON(w, body, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	if er, ok := data.(errorResponse); ok {
		er.Success = false
		data = er
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
