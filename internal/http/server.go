// Package http exposes the ledger as a JSON API.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contas/internal/advice"
	"contas/internal/cache"
	"contas/internal/core"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/middleware/ratelimit"
	"contas/internal/middleware/security"
	"contas/internal/middleware/trace"
)

// Server wires the ledger store and advisor behind a chi router with
// tracing, hardening and metrics middleware.
type Server struct {
	http.Server

	store   *ledger.Store
	advisor *advice.Advisor
	logger  *log.Logger
	metrics *Metrics

	limiter  *ratelimit.Limiter
	detector *security.Detector

	summaryCache *cache.LRUCache[core.MonthReport]
	cacheManager *cache.Manager

	// Last generated analysis; overwritten by every POST /api/advice.
	adviceMu   sync.Mutex
	adviceSlot *adviceResult

	shutdownOnce sync.Once
}

type adviceResult struct {
	Period      core.Period `json:"referenceMonth"`
	Analysis    string      `json:"analysis"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// advisor may be nil; the advice endpoints then answer 503.
func NewServer(addr string, store *ledger.Store, advisor *advice.Advisor, logger *log.Logger, reg *prometheus.Registry) *Server {
	s := &Server{
		store:        store,
		advisor:      advisor,
		logger:       logger.WithComponent(log.ComponentHTTP),
		metrics:      NewMetrics(reg),
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     security.NewDetector(),
		summaryCache: cache.NewLRUCache[core.MonthReport](100, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(time.Minute)

	tracer := trace.NewMiddleware(s.detector.ExtractClientIP, log.NewStructuredLogger(s.logger))
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(tracer.Middleware)
	r.Use(headers.Middleware)
	r.Use(s.blockSuspicious)
	r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit))
	r.Use(s.observe)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/ledger", s.handleLedger)
		r.Get("/periods", s.handlePeriods)

		r.Post("/earnings", s.handleAddEarning)
		r.Post("/fixed-expenses", s.handleAddFixedExpense)
		r.Post("/diverse-expenses", s.handleAddDiverseExpense)
		r.Post("/purchases", s.handleAddPurchase)

		r.Delete("/{kind}/{id}", s.handleDelete)

		r.Post("/advice", s.handleGenerateAdvice)
		r.Get("/advice", s.handleGetAdvice)
	})

	s.Server = http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// blockSuspicious rejects scanner and traversal patterns before routing.
func (s *Server) blockSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.metrics.SuspiciousHits.Inc()
			s.logger.WarnContext(r.Context(), "Suspicious request blocked",
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, s.detector.ExtractClientIP(r))
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateLimitHits.Inc()
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// observe records request count and latency per chi route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.Status())).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
