// Package server is a jsonbin-compatible document store: clients create,
// read, overwrite and delete whole JSON documents ("bins") authenticated by a
// single master key.
package server

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/nzaccagnino/studydesk/internal/db"
	"github.com/nzaccagnino/studydesk/internal/logger"
)

const masterKeyHeader = "X-Master-Key"

type Config struct {
	MasterKey          string
	RateLimitPerMinute int
}

type Server struct {
	db         *db.DB
	masterHash []byte
	// accepted holds SHA-256 digests of keys that already passed bcrypt.
	accepted sync.Map
	limiter    *RateLimiter
	metrics    *Metrics
	log        *logger.Logger
	router     *chi.Mux
}

func New(database *db.DB, cfg Config, log *logger.Logger) (*Server, error) {
	if cfg.MasterKey == "" {
		return nil, fmt.Errorf("master key is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.MasterKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash master key: %w", err)
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 100
	}

	s := &Server{
		db:         database,
		masterHash: hash,
		limiter:    NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
		metrics:    NewMetrics(database),
		log:        log.WithComponent("server"),
		router:     chi.NewRouter(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.healthHandler)
	s.router.Get("/metrics", s.metrics.Handler().ServeHTTP)

	s.router.Route("/b", func(r chi.Router) {
		r.Use(s.limiter.Middleware)
		r.Use(s.masterKeyMiddleware)
		r.Post("/", s.createBinHandler)
		r.Get("/{id}", s.getBinHandler)
		r.Get("/{id}/latest", s.getBinHandler)
		r.Put("/{id}", s.putBinHandler)
		r.Delete("/{id}", s.deleteBinHandler)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the rate limiter's background cleanup.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) masterKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(masterKeyHeader)
		if key == "" {
			jsonError(w, "You need to pass X-Master-Key in the header", http.StatusUnauthorized)
			return
		}
		if !s.checkMasterKey(key) {
			s.log.Warnw("Rejected master key", "ip", r.RemoteAddr, "path", r.URL.Path)
			jsonError(w, "Invalid X-Master-Key provided", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkMasterKey runs bcrypt once per distinct accepted key and answers
// later requests from the digest cache. Rejected keys are never cached.
func (s *Server) checkMasterKey(key string) bool {
	digest := sha256.Sum256([]byte(key))
	if _, ok := s.accepted.Load(digest); ok {
		return true
	}
	if bcrypt.CompareHashAndPassword(s.masterHash, []byte(key)) != nil {
		return false
	}
	s.accepted.Store(digest, struct{}{})
	return true
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.LogHTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, ww.Status(),
			float64(time.Since(start).Microseconds())/1000)
	})
}

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"message": message}, status)
}
