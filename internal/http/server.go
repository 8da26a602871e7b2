package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cashflowin/internal/auth"
	"cashflowin/internal/cache"
	"cashflowin/internal/core"
	applog "cashflowin/internal/log"
	"cashflowin/internal/middleware/ratelimit"
	"cashflowin/internal/middleware/security"
	"cashflowin/internal/middleware/trace"
	"cashflowin/internal/report"
	"cashflowin/internal/store"
	appweb "cashflowin/web"
)

type Server struct {
	http.Server
	templates     *template.Template
	entries       store.EntryStore
	guard         *auth.Guard
	sessionSecret string
	locale        report.Locale

	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	slogger  *applog.StructuredLogger

	// LRU cache for monthly snapshots, invalidated on every insert
	snapshotCache *cache.LRUCache[core.LedgerSnapshot]
	cacheManager  *cache.Manager

	metrics      *Metrics
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr, sessionSecret string, entries store.EntryStore, users store.UserFinder) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		entries:       entries,
		guard:         auth.NewGuard(users),
		sessionSecret: sessionSecret,
		locale:        report.Indonesian,
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      security.NewDetector(),
		headers:       security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		slogger:       applog.NewStructuredLogger(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)),
		snapshotCache: cache.NewLRUCache[core.LedgerSnapshot](100, 5*time.Minute),
		cacheManager:  cache.NewManager(),
		metrics:       NewMetrics(),
	}

	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.wrap(s.requireAuth(s.handleIndex)))
	mux.HandleFunc("/login", s.wrap(s.handleLogin))
	mux.HandleFunc("/logout", s.wrap(s.handleLogout))
	mux.HandleFunc("/entries", s.wrap(s.requireAuth(s.handleCreateEntry)))
	mux.HandleFunc("/ui/ledger", s.wrap(s.requireAuth(s.handleLedgerPartial)))
	mux.HandleFunc("/report", s.wrap(s.requireAuth(s.handleReport)))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	return s
}

// wrap adds security headers, rate limiting, and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	handler := s.headers.Middleware(next)
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := s.detector.ExtractClientIP(r)
		requestID := trace.GenerateRequestID()
		ctx := context.WithValue(r.Context(), trace.RequestIDKey, requestID)
		r = r.WithContext(ctx)

		s.slogger.LogHTTPStart(ctx, r, clientIP)

		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(ctx, "Suspicious request pattern", "client_ip", clientIP, "url", r.URL.Path)
		}

		// Rate limit mutations only
		if r.Method == http.MethodPost && !s.limiter.Allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			s.metrics.RateLimited.Add(1)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.metrics.Requests.Add(1)
		if rw.statusCode >= 500 {
			s.metrics.Errors.Add(1)
		}
		s.slogger.LogHTTPEnd(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
