package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"confidence-pool-go/config"
	"confidence-pool-go/database"
	"confidence-pool-go/handlers"
	"confidence-pool-go/logging"
	"confidence-pool-go/middleware"
	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.TestConnection(); err != nil {
		logging.Fatalf("Database test failed: %v", err)
	}

	// Repositories
	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	poolRepo := database.NewMongoPoolRepository(db)
	participantRepo := database.NewMongoParticipantRepository(db)
	scoreRepo := database.NewMongoScoreRepository(db)
	winnerRepo := database.NewMongoWinnerRepository(db)
	tieBreakerRepo := database.NewMongoTieBreakerRepository(db)
	playoffTeamRepo := database.NewMongoPlayoffTeamRepository(db)
	playoffWeightRepo := database.NewMongoPlayoffWeightRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	gameService := services.NewGameService(gameRepo, cfg.App.CurrentSeason, cfg.App.DefaultSeasonType)
	poolService := services.NewPoolService(poolRepo, participantRepo)
	pickService := services.NewPickService(poolRepo, participantRepo, gameRepo, pickRepo, tieBreakerRepo, cfg.App.DefaultSeasonType)
	scoringService := services.NewScoringService(gameRepo, pickRepo, scoreRepo, participantRepo, cfg.App.DefaultSeasonType)
	scoringService.SetPlayoffWeightSource(playoffWeightRepo)
	winnerService := services.NewWinnerService(gameRepo, scoreRepo, winnerRepo, tieBreakerRepo, cfg.App.DefaultSeasonType)
	playoffService := services.NewPlayoffService(playoffTeamRepo, playoffWeightRepo, poolRepo, participantRepo)

	scoreChecker := services.NewScoreCheckService(gameService, scoringService, winnerService, poolRepo, cfg.App.CurrentSeason, cfg.App.ScoreCheckInterval)
	if cfg.App.ScoreCheckEnabled {
		gameService.SetResultHook(scoreChecker.CheckNow)
		scoreChecker.Start()
		defer scoreChecker.Stop()
	} else {
		logging.Warn("Scheduled score checking is disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService, cfg.App.CurrentSeason)
	poolHandler := handlers.NewPoolHandler(poolService, cfg.App.CurrentSeason)
	pickHandler := handlers.NewPickHandler(pickService, cfg.App.CurrentSeason)
	scoreHandler := handlers.NewScoreHandler(scoringService, poolService, cfg.App.CurrentSeason)
	winnerHandler := handlers.NewWinnerHandler(winnerService, poolService, cfg.App.CurrentSeason)
	playoffHandler := handlers.NewPlayoffHandler(playoffService, cfg.App.CurrentSeason)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	// Public
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/games/current-week", gameHandler.GetCurrentWeek).Methods("GET")
	r.HandleFunc("/api/games/{week:[0-9]+}", gameHandler.GetWeekGames).Methods("GET")
	r.HandleFunc("/api/pools", poolHandler.ListPools).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}", poolHandler.GetPool).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}/participants", poolHandler.GetParticipants).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}/scores/{week:[0-9]+}", scoreHandler.GetWeekScores).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}/standings/{period}", scoreHandler.GetPeriodStandings).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}/winners", winnerHandler.GetPoolWinners).Methods("GET")
	r.HandleFunc("/api/pools/{poolID}/winners/{period}", winnerHandler.GetPeriodWinner).Methods("GET")
	r.HandleFunc("/api/playoff-teams", playoffHandler.GetPlayoffTeams).Methods("GET")

	// Authenticated
	authed := r.NewRoute().Subrouter()
	authed.Use(authMiddleware.RequireAuth)
	authed.HandleFunc("/api/pools/{poolID}/picks/{week:[0-9]+}", pickHandler.SubmitPicks).Methods("POST")
	authed.HandleFunc("/api/pools/{poolID}/picks/{week:[0-9]+}/{participantID}", pickHandler.GetParticipantPicks).Methods("GET")
	authed.HandleFunc("/api/pools/{poolID}/playoff-weights", playoffHandler.SubmitPlayoffWeights).Methods("POST")
	authed.HandleFunc("/api/pools/{poolID}/playoff-weights/{participantID}", playoffHandler.GetPlayoffWeights).Methods("GET")

	// Admin
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/games", gameHandler.UpsertGames).Methods("POST")
	admin.HandleFunc("/pools", poolHandler.CreatePool).Methods("POST")
	admin.HandleFunc("/pools/{poolID}/participants", poolHandler.AddParticipant).Methods("POST")
	admin.HandleFunc("/pools/{poolID}/tie-breaker", poolHandler.SetTieBreaker).Methods("PUT")
	admin.HandleFunc("/pools/{poolID}/scores/{week:[0-9]+}", scoreHandler.RecomputeWeek).Methods("POST")
	admin.HandleFunc("/pools/{poolID}/winners/{period}", winnerHandler.ResolvePeriod).Methods("POST")
	admin.HandleFunc("/playoff-teams", playoffHandler.SetPlayoffTeams).Methods("PUT")
	admin.HandleFunc("/pools/{poolID}/playoff-weights", playoffHandler.OverridePlayoffWeights).Methods("PUT")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Errorf("Server shutdown failed: %v", err)
	}
}
