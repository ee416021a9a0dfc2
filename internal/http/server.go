// Package http exposes the JSON API: ledger, journal, schedule,
// dashboard, settings and auth, plus /metrics and health probes.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gagyebu/internal/auth"
	"gagyebu/internal/avatar"
	"gagyebu/internal/cache"
	"gagyebu/internal/dashboard"
	"gagyebu/internal/journal"
	"gagyebu/internal/ledger"
	"gagyebu/internal/log"
	"gagyebu/internal/registry"
	"gagyebu/internal/schedule"
	"gagyebu/internal/settings"
	"gagyebu/internal/share"
)

// demoUserID stands in for the authenticated user until the app grows
// real multi-user accounts.
const demoUserID int64 = 1

// Options carries everything the server needs wired in.
type Options struct {
	Addr         string
	Ledger       *ledger.Store
	Registry     *registry.Registry
	Journal      *journal.Store
	Schedule     *schedule.Store
	Publisher    *share.Publisher
	Auth         *auth.Service
	Avatar       *avatar.Fetcher
	Dashboard    *dashboard.Service
	Settings     *settings.Store
	Logger       *log.Logger
	ShareBaseURL string
	CacheSize    int
	CacheTTL     time.Duration
}

type Server struct {
	http.Server

	ledger    *ledger.Store
	registry  *registry.Registry
	journal   *journal.Store
	schedule  *schedule.Store
	publisher *share.Publisher
	auth      *auth.Service
	avatar    *avatar.Fetcher
	dashboard *dashboard.Service
	settings  *settings.Store
	logger    *log.Logger

	shareBaseURL string

	// summaryCache holds month summaries keyed "YYYY-MM". Every ledger
	// mutation purges it, so a stale entry can only be a formatting bug.
	summaryCache *cache.LRU[ledger.MonthSummary]
	rateLimiter  *rateLimiter

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 32
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	s := &Server{
		ledger:           opts.Ledger,
		registry:         opts.Registry,
		journal:          opts.Journal,
		schedule:         opts.Schedule,
		publisher:        opts.Publisher,
		auth:             opts.Auth,
		avatar:           opts.Avatar,
		dashboard:        opts.Dashboard,
		settings:         opts.Settings,
		logger:           opts.Logger.WithComponent(log.ComponentHTTP),
		shareBaseURL:     opts.ShareBaseURL,
		summaryCache:     cache.NewLRU[ledger.MonthSummary](opts.CacheSize, opts.CacheTTL),
		rateLimiter:      newRateLimiter(),
		stopCacheCleanup: make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(s.logger))
	r.Use(s.requestLogging)
	r.Use(securityHeaders)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Get("/summary", s.handleMonthSummary)
			r.Get("/calendar", s.handleCalendar)
			r.Get("/charts/pie", s.handlePieChart)
			r.Get("/charts/series", s.handleMonthlySeries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTransaction)
				r.Put("/", s.handleUpdateTransaction)
				r.Post("/delete-request", s.handleTransactionDeleteRequest)
				r.Post("/delete-confirm", s.handleTransactionDeleteConfirm)
				r.Post("/delete-cancel", s.handleTransactionDeleteCancel)
			})
		})

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Post("/", s.handleCreateEntry)
			r.Get("/search", s.handleSearchEntries)
			r.Get("/moods", s.handleMoodStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEntry)
				r.Post("/like", s.handleToggleEntryLike)
				r.Post("/comments", s.handleAddEntryComment)
				r.Post("/comments/{commentID}/replies", s.handleAddEntryReply)
				r.Delete("/comments/{commentID}", s.handleDeleteEntryComment)
				r.Post("/delete-request", s.handleEntryDeleteRequest)
				r.Post("/delete-confirm", s.handleEntryDeleteConfirm)
				r.Post("/delete-cancel", s.handleEntryDeleteCancel)
			})
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Post("/", s.handleCreateEvent)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEvent)
				r.Put("/", s.handleUpdateEvent)
				r.Post("/like", s.handleToggleEventLike)
				r.Post("/comments", s.handleAddEventComment)
				r.Delete("/comments/{commentID}", s.handleDeleteEventComment)
				r.Post("/share", s.handleShareEvent)
				r.Post("/delete-request", s.handleEventDeleteRequest)
				r.Post("/delete-confirm", s.handleEventDeleteConfirm)
				r.Post("/delete-cancel", s.handleEventDeleteCancel)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", s.handleQuickStats)
			r.Get("/notifications", s.handleNotifications)
			r.Get("/recent-posts", s.handleRecentPosts)
			r.Get("/comparison", s.handleComparison)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Put("/profile", s.handleUpdateProfile)
			r.Put("/notifications", s.handleUpdateNotifications)
			r.Put("/privacy", s.handleUpdatePrivacy)
			r.Get("/categories", s.handleListCategories)
			r.Post("/categories", s.handleAddCategory)
			r.Delete("/categories", s.handleRemoveCategory)
			r.Get("/payment-methods", s.handleListPaymentMethods)
			r.Post("/payment-methods", s.handleAddPaymentMethod)
			r.Delete("/payment-methods", s.handleRemovePaymentMethod)
			r.Put("/budgets", s.handleSetBudget)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/session", s.handleSession)
		})

		r.Get("/avatar", s.handleAvatar)
	})

	s.Server = http.Server{
		Addr:    opts.Addr,
		Handler: r,
	}

	go s.startCacheCleanup()

	return s
}

// summaryKey keys the month-summary cache.
func summaryKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// invalidateSummaries purges all cached summaries. Called after every
// ledger mutation.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Purge()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the server and its background goroutines exactly once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
