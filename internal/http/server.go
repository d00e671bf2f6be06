// Package http exposes the tracker as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"finanza/internal/assistant"
	"finanza/internal/cache"
	"finanza/internal/charts"
	"finanza/internal/config"
	applog "finanza/internal/log"
	"finanza/internal/middleware/ratelimit"
	"finanza/internal/middleware/trace"
	"finanza/internal/services"
)

type Server struct {
	http.Server

	tracker   *services.TrackerService
	seeder    *services.Seeder
	assistant *assistant.Assistant // nil when not configured
	charts    *charts.Generator

	limiter      *ratelimit.Limiter
	cacheManager *cache.Manager

	// Derived-view caches, purged on every write.
	reportCache *cache.LRUCache[services.RangeReport]
	chartCache  *cache.LRUCache[[]byte]

	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and response caches. The assistant may
// be nil; its endpoints then answer 503.
func NewServer(cfg *config.Config, tracker *services.TrackerService, seeder *services.Seeder, asst *assistant.Assistant) *Server {
	router := mux.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		tracker:      tracker,
		seeder:       seeder,
		assistant:    asst,
		charts:       charts.NewGenerator(),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute}),
		cacheManager: cache.NewManager(),
		reportCache:  cache.NewLRUCache[services.RangeReport](100, cfg.CacheTTL),
		chartCache:   cache.NewLRUCache[[]byte](50, cfg.CacheTTL),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.chartCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	traceMW := trace.NewMiddleware(clientIP)
	router.Use(traceMW.Middleware)
	router.Use(applog.Middleware(applog.New(applog.Config{Component: applog.ComponentHTTP})))

	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.Middleware(clientIP, nil))

	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/analytics/chart", s.handleAnalyticsChart).Methods(http.MethodGet)

	api.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions", s.handleCreateTransaction).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	api.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/import", s.handleImport).Methods(http.MethodPost)

	api.HandleFunc("/onboarding", s.handleOnboarding).Methods(http.MethodPost)
	api.HandleFunc("/profile", s.handleProfile).Methods(http.MethodGet)

	api.HandleFunc("/assistant/quick", s.handleAssistantQuick).Methods(http.MethodPost)
	api.HandleFunc("/assistant/advice", s.handleAssistantAdvice).Methods(http.MethodPost)
	api.HandleFunc("/assistant/chat", s.handleAssistantChat).Methods(http.MethodPost)
	api.HandleFunc("/assistant/search", s.handleAssistantSearch).Methods(http.MethodPost)
	api.HandleFunc("/assistant/image", s.handleAssistantImage).Methods(http.MethodPost)

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateViews drops all cached reports and charts. Called after every
// write so reads never serve a stale list.
func (s *Server) invalidateViews() {
	s.reportCache.Purge()
	s.chartCache.Purge()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
