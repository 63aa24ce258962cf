package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockpoker/server/internal/auth"
	"github.com/blockpoker/server/internal/config"
	"github.com/blockpoker/server/internal/database"
	"github.com/blockpoker/server/internal/handlers"
	"github.com/blockpoker/server/internal/history"
	"github.com/blockpoker/server/server"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
)

type PokerServer struct {
	config     *config.Config
	db         *database.DB
	rdb        *redis.Client
	jwtManager *auth.JWTManager
	server     *http.Server
	hub        *server.Hub
}

func NewPokerServer() (*PokerServer, error) {
	cfg := config.Load()

	// Hand archive database is optional; the server runs without one
	var db *database.DB
	var store *history.Store
	if cfg.HasDatabase() {
		var err error
		db, err = database.NewConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store = history.NewStore(db)
	} else {
		slog.Warn("No database configured, hand archive disabled")
	}

	rdb, err := newRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, "blockpoker")
	hub := server.NewHub(cfg, rdb, store, history.NewCache(rdb))

	return &PokerServer{
		config:     cfg,
		db:         db,
		rdb:        rdb,
		jwtManager: jwtManager,
		hub:        hub,
	}, nil
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	return redis.NewClient(opts), nil
}

func (s *PokerServer) Start() error {
	router := s.setupRouter()

	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: router,
	}

	go s.hub.Run()

	go func() {
		slog.Info("Starting poker server", "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	return s.Shutdown()
}

func (s *PokerServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}

	if err := s.rdb.Close(); err != nil {
		slog.Error("Failed to close redis connection", "error", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

func (s *PokerServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint
	r.Get("/ws", s.serveWebSocket)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		joinHandler := handlers.NewJoinHandler(s.jwtManager)
		r.Mount("/join", joinHandler.Routes())

		r.Get("/tables", s.listTables)
	})

	return r
}

func (s *PokerServer) listTables(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.hub.Rooms())
}

// serveWebSocket handles WebSocket upgrade with authentication
func (s *PokerServer) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	// Extract JWT token from query parameter or Authorization header
	var token string

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		token = s.jwtManager.ExtractTokenFromBearer(authHeader)
	}

	// If no header, try query parameter (for WebSocket clients that can't set headers)
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	if token == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	server.ServeWs(s.hub, w, r, claims.PlayerID, claims.Username, claims.WalletAddress)
}
