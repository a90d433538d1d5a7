package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outvibe-backend/internal/config"
	"outvibe-backend/internal/handlers"
	"outvibe-backend/internal/itinerary"
	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/repository"
	"outvibe-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load environment overrides, then configuration
	_ = godotenv.Load()
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	blobRepo := repository.NewBlobRepository(db)

	// Initialize services
	accountService := services.NewAccountService(accountRepo, cfg.JWT.Secret)
	stateStore := services.NewStateStore(blobRepo)
	generator := itinerary.NewClient(cfg.Generator.Endpoint)
	sessionService := services.NewSessionService(stateStore, generator)
	mediaService, err := services.NewMediaService(
		context.Background(),
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media service")
	}
	pushService, err := services.NewPushService(cfg.APNs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create push service")
	}
	wsHub := services.NewWSHub()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	profileHandler := handlers.NewProfileHandler(stateStore, sessionService, mediaService)
	inviteHandler := handlers.NewInviteHandler(sessionService, accountService, stateStore)
	sessionHandler := handlers.NewSessionHandler(sessionService, accountService, stateStore, wsHub, pushService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, accountService, stateStore)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/accounts", accountHandler.CreateAccount)
		r.Get("/invites/{inviter_code}/{invite_id}", inviteHandler.ResolveInvite)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(accountService))
			r.Put("/accounts/me/push-token", accountHandler.RegisterPushToken)
			r.Post("/profile", profileHandler.CreateProfile)
			r.Get("/profile", profileHandler.GetProfile)
			r.Patch("/profile", profileHandler.UpdateProfile)
			r.Post("/profile/avatar", profileHandler.UploadAvatar)
			r.Get("/profile/intro", profileHandler.IntroStatus)
			r.Put("/profile/intro", profileHandler.MarkIntroSeen)
			r.Post("/logout", profileHandler.Logout)
			r.Post("/invites", inviteHandler.CreateInvite)
			r.Get("/invites", inviteHandler.ListInvites)
			r.Get("/demo-friends", sessionHandler.DemoFriends)
			r.Post("/sessions", sessionHandler.CreateSession)
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Get("/sessions/{session_id}", sessionHandler.GetSession)
			r.Post("/sessions/{session_id}/swipes", sessionHandler.RecordSwipe)
			r.Post("/sessions/{session_id}/complete", sessionHandler.CompleteSession)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
