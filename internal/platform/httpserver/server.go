package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	account "storerating/contexts/identity-access/account-service"
	authorization "storerating/contexts/identity-access/authorization-service"
	"storerating/contexts/identity-access/authorization-service/application/queries"
	authzentities "storerating/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "storerating/contexts/identity-access/authorization-service/domain/errors"
	admindashboardservice "storerating/contexts/internal-ops/admin-dashboard-service"
	ratings "storerating/contexts/store-catalog/rating-ledger"
	store "storerating/contexts/store-catalog/store-service"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	_ "storerating/internal/platform/httpserver/docs"
)

const (
	moduleName   = "internal/platform/httpserver"
	apiPrefix    = "/api"
	maxBodyBytes = 1 << 20
)

// Modules groups the context modules the server routes to.
type Modules struct {
	Accounts      account.Module
	Authorization authorization.Module
	Stores        store.Module
	Ratings       ratings.Module
	Dashboard     admindashboardservice.Module
}

type Config struct {
	Addr      string
	ClientURL string
	// HealthCheck reports whether storage is reachable. Nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

type Server struct {
	mux       *http.ServeMux
	handler   http.Handler
	logger    *slog.Logger
	addr      string
	clientURL string
	health    func(ctx context.Context) error
	tracer    trace.Tracer
	http      *http.Server

	accounts  account.Module
	gate      queries.CheckAccessUseCase
	stores    store.Module
	ratings   ratings.Module
	dashboard admindashboardservice.Module
}

func New(modules Modules, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      cfg.Addr,
		clientURL: strings.TrimRight(strings.TrimSpace(cfg.ClientURL), "/"),
		health:    cfg.HealthCheck,
		tracer:    otel.Tracer(moduleName),
		accounts:  modules.Accounts,
		gate:      modules.Authorization.Gate,
		stores:    modules.Stores,
		ratings:   modules.Ratings,
		dashboard: modules.Dashboard,
	}
	s.registerRoutes()
	s.handler = s.withTracing(s.withRequestLog(s.withCORS(s.mux)))
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", moduleName,
		"layer", "platform",
		"addr", s.addr,
	)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", moduleName,
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.route("POST /auth/register", s.handleRegister)
	s.route("POST /auth/login", s.handleLogin)
	s.route("GET /auth/profile", s.authed(authzentities.Authenticated(), s.handleProfile))
	s.route("PUT /auth/password", s.authed(authzentities.Authenticated(), s.handleChangePassword))
	s.route("GET /auth/verify", s.authed(authzentities.Authenticated(), s.handleVerify))

	admin := authzentities.RoleRestricted(identity.RoleAdmin)
	s.route("GET /users", s.authed(admin, s.handleListUsers))
	s.route("GET /users/stats", s.authed(admin, s.handleDashboardStats))
	s.route("GET /users/{id}", s.authed(admin, s.handleGetUser))
	s.route("POST /users", s.authed(admin, s.handleCreateUser))
	s.route("DELETE /users/{id}", s.authed(admin, s.handleDeleteUser))
	s.route("GET /users/{id}/ratings", s.authed(authzentities.Authenticated(), s.handleUserRatings))

	s.route("GET /stores", s.authed(authzentities.Authenticated(), s.handleListStores))
	s.route("GET /stores/{id}", s.authed(authzentities.Authenticated(), s.handleGetStore))
	s.route("POST /stores", s.authed(admin, s.handleCreateStore))
	s.route("PUT /stores/{id}", s.authed(admin, s.handleUpdateStore))
	s.route("DELETE /stores/{id}", s.authed(admin, s.handleDeleteStore))
	s.route("GET /stores/dashboard/my-store", s.authed(authzentities.RoleRestricted(identity.RoleStoreOwner), s.handleOwnerDashboard))

	rater := authzentities.RoleRestricted(identity.RoleUser)
	s.route("POST /ratings/store/{storeId}", s.authed(rater, s.handleSubmitRating))
	s.route("GET /ratings/store/{storeId}/my-rating", s.authed(rater, s.handleMyRating))
	s.route("GET /ratings/store/{storeId}", s.authed(authzentities.Authenticated(), s.handleStoreRatings))
	s.route("PUT /ratings/{id}", s.authed(rater, s.handleUpdateRating))
	s.route("DELETE /ratings/{id}", s.authed(rater, s.handleDeleteRating))
	s.route("GET /ratings/my-ratings", s.authed(rater, s.handleMyRatings))
}

// route registers pattern at the root and under /api.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	s.mux.HandleFunc(pattern, handler)
	s.mux.HandleFunc(method+" "+apiPrefix+path, handler)
}

type principalHandler func(w http.ResponseWriter, r *http.Request, principal identity.Principal)

// authed resolves the bearer token, stores the principal in the request
// context and checks capability before calling next.
func (s *Server) authed(capability authzentities.Capability, next principalHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Authorization bearer token is required")
			return
		}
		principal, err := s.accounts.Handler.AuthenticateToken(r.Context(), token)
		if err != nil {
			s.writeAccountDomainError(w, r, err)
			return
		}
		ctx := identity.WithPrincipal(r.Context(), principal)
		r = r.WithContext(ctx)
		if err := s.gate.Execute(ctx, queries.CheckAccessQuery{Capability: capability}); err != nil {
			s.writeCommonError(w, r, err)
			return
		}
		next(w, r, principal)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("health check failed",
				"event", "http_health_check_failed",
				"module", moduleName,
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  validation.Errors `json:"fields,omitempty"`
}

// writeCommonError handles the errors every area shares: validation,
// access decisions and anything unmapped.
func (s *Server) writeCommonError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validation.Errors
	var field *validation.Error
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation_error", Message: "validation failed", Fields: fields})
	case errors.As(err, &field):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation_error", Message: "validation failed", Fields: validation.Errors{field}})
	case errors.Is(err, authzerrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, authzerrors.ErrForbiddenRole):
		writeError(w, http.StatusForbidden, "forbidden_role", err.Error())
	case errors.Is(err, authzerrors.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "service_unavailable", "service temporarily unavailable")
	default:
		s.logger.Error("unhandled request error",
			"event", "http_request_failed",
			"module", moduleName,
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON writes the invalid_json response itself and reports false when
// the body cannot be decoded into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

// pathID reads and validates a UUID path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(r.PathValue(name))
	if err := validation.ID(name, value); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  validation.Errors{err},
		})
		return "", false
	}
	return value, true
}

// queryValue returns the first non-empty value among keys.
func queryValue(r *http.Request, keys ...string) string {
	query := r.URL.Query()
	for _, key := range keys {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			return value
		}
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) withTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := s.tracer.Start(ctx, r.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		r = r.WithContext(ctx)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if r.Pattern != "" {
			span.SetName(r.Pattern)
		}
		span.SetAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", r.URL.Path),
			attribute.Int("http.response.status_code", rec.status),
		)
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	})
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request completed",
			"event", "http_request_completed",
			"module", moduleName,
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"pattern", r.Pattern,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withCORS admits the configured client origin and answers preflights
// before routing.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimRight(r.Header.Get("Origin"), "/")
		if s.clientURL != "" && origin == s.clientURL {
			header := w.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			header.Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
