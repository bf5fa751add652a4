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
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/questledger/internal/handler"
	"github.com/osse101/questledger/internal/history"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/metrics"
	"github.com/osse101/questledger/internal/quest"
	"github.com/osse101/questledger/internal/sse"
)

// Dependencies are the services the HTTP API serves
type Dependencies struct {
	Season   handler.Season
	Quests   quest.Service
	History  history.Service
	Accounts handler.AccountLister
	Roller   handler.Roller
	SSEHub   *sse.Hub
	// DB backs /readyz; nil for in-memory storage
	DB handler.Pinger
}

type Server struct {
	httpServer *http.Server
	deps       Dependencies
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		deps: deps,
	}
}

// NewRouter builds the routing tree with the full middleware stack
func NewRouter(apiKey string, trustedProxies []string, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	proxies := NewProxySet(trustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/points", handler.HandleApplyPoints(deps.Season))

		questHandler := handler.NewQuestHandler(deps.Quests)
		r.Get("/quests", questHandler.HandleListQuests)
		r.Post("/quests/complete", questHandler.HandleCompleteQuest)
		r.Post("/battles/complete", questHandler.HandleCompleteBattle)

		r.Get("/leaderboard", handler.HandleGetCurrentLeaderboard(deps.Season))
		r.Get("/leaderboard/{period}", handler.HandleGetLeaderboard(deps.Season))

		r.Get("/players/{player}", handler.HandleGetPlayer(deps.Season))
		r.Get("/players/{player}/weight", handler.HandleGetPlayerWeight(deps.Season))

		r.Get("/pool", handler.HandleGetPool(deps.Season))
		r.Post("/pool/deposit", handler.HandleDeposit(deps.Season))

		r.Get("/settlements", handler.HandleListSettlements(deps.History))
		r.Get("/settlements/{period}", handler.HandleGetSettlement(deps.History))

		if deps.SSEHub != nil {
			r.Get("/events", sse.Handler(deps.SSEHub))
		}

		r.Route("/admin", func(r chi.Router) {
			r.Post("/settle", handler.HandleForceSettle(deps.Season))
			r.Put("/reward-config", handler.HandleUpdateRewardConfig(deps.Season))
			r.Put("/multipliers/{player}", handler.HandleSetMultiplier(deps.Season))
			if deps.Roller != nil {
				r.Post("/rollover", handler.HandleRollover(deps.Roller, deps.Season))
			}
			if deps.Accounts != nil {
				r.Get("/accounts", handler.HandleListAccounts(deps.Accounts))
			}
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
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
		statusCode:     http.StatusOK, // default status
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

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
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
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
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
