package httpserver

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "net/url"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/cors"

    applookup "github.com/bryanwahyu/pwncheck/internal/application/lookup"
    "github.com/bryanwahyu/pwncheck/internal/domain/breach"
    "github.com/bryanwahyu/pwncheck/internal/middleware"
)

type Router struct {
    lookupSvc *applookup.Service
    metrics   *middleware.Metrics
}

// Options configures the HTTP surface.
type Options struct {
    APIKeys        map[string]string
    AllowedOrigins []string
    Health         map[string]middleware.HealthChecker
}

func NewRouter(lookupSvc *applookup.Service, metrics *middleware.Metrics, opts Options) http.Handler {
    r := &Router{lookupSvc: lookupSvc, metrics: metrics}
    mux := chi.NewRouter()

    mux.Use(middleware.RequestID)
    mux.Use(middleware.LoggingMiddleware)
    mux.Use(metrics.Middleware)
    if len(opts.AllowedOrigins) > 0 {
        mux.Use(cors.Handler(cors.Options{
            AllowedOrigins: opts.AllowedOrigins,
            AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
            AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
            ExposedHeaders: []string{middleware.RequestIDHeader},
            MaxAge:         300,
        }))
    }
    mux.Use(middleware.APIKeyAuth(opts.APIKeys))

    mux.Get("/health", middleware.HealthHandler(opts.Health))
    mux.Get("/health/ready", middleware.ReadinessHandler)
    mux.Get("/health/live", middleware.LivenessHandler)
    mux.Handle("/metrics", metrics.Handler())

    mux.Route("/v1", func(rt chi.Router) {
        rt.Get("/breaches/{account}", r.wrap(r.handleLookup))
        rt.Post("/reports", r.wrap(r.handleReport))
    })

    return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client input errors.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, req *http.Request) {
        if err := h(w, req); err != nil {
            var br badRequest
            var cfgErr *breach.ConfigurationError
            switch {
            case errors.As(err, &br), errors.Is(err, breach.ErrEmptyAccount):
                http.Error(w, err.Error(), http.StatusBadRequest)
            case errors.As(err, &cfgErr):
                log.Printf("request_id=%s configuration error: %v", middleware.GetRequestID(req.Context()), err)
                http.Error(w, "service is not configured", http.StatusInternalServerError)
            case errors.Is(err, breach.ErrUpstreamUnavailable):
                log.Printf("request_id=%s upstream error: %v", middleware.GetRequestID(req.Context()), err)
                http.Error(w, err.Error(), http.StatusBadGateway)
            default:
                log.Printf("request_id=%s error: %v", middleware.GetRequestID(req.Context()), err)
                http.Error(w, "internal error", http.StatusInternalServerError)
            }
        }
    }
}

type lookupResponse struct {
    Account    string         `json:"account"`
    Outcome    breach.Outcome `json:"outcome"`
    Rows       []breach.Row   `json:"rows"`
    StatusCode int            `json:"status_code,omitempty"`
    Message    string         `json:"message,omitempty"`
}

// GET /v1/breaches/{account}
func (r *Router) handleLookup(w http.ResponseWriter, req *http.Request) error {
    // chi matches on RawPath when the request carries one, else on the decoded Path
    account := chi.URLParam(req, "account")
    if req.URL.RawPath != "" {
        decoded, err := url.PathUnescape(account)
        if err != nil {
            return badRequest{err}
        }
        account = decoded
    }
    if err := middleware.ValidateAccount(account); err != nil {
        return badRequest{err}
    }

    res, rows, err := r.lookupSvc.Lookup(req.Context(), account)
    if err != nil {
        r.metrics.ObserveLookupFailure()
        return err
    }
    r.metrics.ObserveLookup(res.Outcome, len(res.Breaches))

    resp := lookupResponse{
        Account:    account,
        Outcome:    res.Outcome,
        Rows:       rows,
        StatusCode: res.StatusCode,
        Message:    res.Message,
    }
    return writeJSON(w, statusFor(res.Outcome), resp)
}

// POST /v1/reports
// Body: {"account": "<email or username>"}
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
    var body struct {
        Account string `json:"account"`
    }
    if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
        return badRequest{fmt.Errorf("invalid body: %w", err)}
    }
    account := middleware.SanitizeString(body.Account)
    if err := middleware.ValidateAccount(account); err != nil {
        return badRequest{err}
    }

    rep, err := r.lookupSvc.Run(req.Context(), account)
    if err != nil {
        r.metrics.ObserveLookupFailure()
        return err
    }
    r.metrics.ObserveLookup(rep.Outcome, len(rep.Rows))
    if n := len(rep.ReportPaths); n > 0 {
        r.metrics.ReportsGenerated.Add(float64(n))
    }

    return writeJSON(w, statusFor(rep.Outcome), rep)
}

func statusFor(o breach.Outcome) int {
    switch o {
    case breach.OutcomeNotFound:
        return http.StatusNotFound
    case breach.OutcomeError:
        return http.StatusBadGateway
    default:
        return http.StatusOK
    }
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    return json.NewEncoder(w).Encode(v)
}
