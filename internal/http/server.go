package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"salesdash/internal/core"
	"salesdash/internal/services"
)

// Seeder replaces the record store from the configured seed source.
type Seeder interface {
	Reseed(ctx context.Context) (int, error)
}

// DashboardService is the read-side surface the handlers serve.
type DashboardService interface {
	ListTransactions(ctx context.Context, month int, search string, page, perPage int) (services.TransactionPage, error)
	Statistics(ctx context.Context, month int) (core.Statistics, error)
	PriceHistogram(ctx context.Context, month int) (map[string]int, error)
	CategoryBreakdown(ctx context.Context, month int) (map[string]int, error)
	Combined(ctx context.Context, month int, search string, page, perPage int) (services.CombinedView, error)
}

type Server struct {
	http.Server
	seeder       Seeder
	dashboard    DashboardService
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, seeder Seeder, dashboard DashboardService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		seeder:      seeder,
		dashboard:   dashboard,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/initialize", s.withRequestLog(s.handleInitialize))
	mux.HandleFunc("/api/transactions", s.withRequestLog(s.handleTransactions))
	mux.HandleFunc("/api/statistics", s.withRequestLog(s.handleStatistics))
	mux.HandleFunc("/api/bar-chart", s.withRequestLog(s.handleBarChart))
	mux.HandleFunc("/api/pie-chart", s.withRequestLog(s.handlePieChart))
	mux.HandleFunc("/api/combined", s.withRequestLog(s.handleCombined))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withRequestLog adds request-id tagging, rate limiting of reseed requests,
// and start/completion logging with the captured status code.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Reseeding refetches and rewrites the whole dataset; keep it rate
		// limited per client.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeMessage(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
