package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/classforge/engine/internal/character"
	"github.com/classforge/engine/internal/database"
	"github.com/classforge/engine/internal/eventlog"
	"github.com/classforge/engine/internal/handler"
	"github.com/classforge/engine/internal/inventory"
	"github.com/classforge/engine/internal/item"
	"github.com/classforge/engine/internal/ledger"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/metrics"
	"github.com/classforge/engine/internal/reward"
	"github.com/classforge/engine/internal/selection"
)

// Services bundles the service layer handed to the router
type Services struct {
	Character character.Service
	Reward    reward.Service
	Inventory inventory.Service
	Item      item.Service
	Ledger    ledger.Service
	Selection selection.Service
	EventLog  eventlog.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance with the full route table
func NewServer(port int, apiKey string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost to innermost
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/character", func(r chi.Router) {
			r.Post("/", handler.HandleCreateCharacter(svcs.Character))
			r.Get("/", handler.HandleGetCharacter(svcs.Character))
			r.Get("/by-student", handler.HandleGetCharacterByStudent(svcs.Character))
			r.Get("/roster", handler.HandleGetRoster(svcs.Character))
			r.Get("/progress", handler.HandleGetProgress(svcs.Character))
			r.Post("/archive", handler.HandleArchiveCharacter(svcs.Character))
		})

		r.Route("/reward", func(r chi.Router) {
			r.Post("/grant", handler.HandleGrantReward(svcs.Reward))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(svcs.Inventory))
			r.Post("/acquire", handler.HandleAcquireItem(svcs.Inventory))
			r.Post("/equip", handler.HandleEquipItem(svcs.Inventory))
			r.Post("/unequip", handler.HandleUnequipItem(svcs.Inventory))
			r.Post("/equipment", handler.HandleSetEquipment(svcs.Inventory))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handler.HandleListCatalog(svcs.Item))
			r.Get("/item", handler.HandleGetDefinition(svcs.Item))
			r.Post("/item", handler.HandleCreateDefinition(svcs.Item))
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(svcs.Ledger))
			r.Get("/statement", handler.HandleGetStatement(svcs.Ledger))
			r.Get("/verify", handler.HandleVerifyConservation(svcs.Ledger))
		})

		r.Route("/selection", func(r chi.Router) {
			r.Post("/draw", handler.HandleSelectStudent(svcs.Selection))
			r.Get("/recent", handler.HandleRecentSelections(svcs.Selection))
		})

		r.Get("/events", handler.HandleGetEvents(svcs.EventLog))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
