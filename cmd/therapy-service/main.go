package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/assessment"
	"github.com/Aditya-J07/Nuro-Beats/pkg/beat"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/config"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/database"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/kafka"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/auth"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/middleware"
	"github.com/Aditya-J07/Nuro-Beats/pkg/identity"
	"github.com/Aditya-J07/Nuro-Beats/pkg/patients"
	"github.com/Aditya-J07/Nuro-Beats/pkg/progress"
	"github.com/Aditya-J07/Nuro-Beats/pkg/session"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init("therapy-service")
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.Close(db)

	repo := store.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate therapy tables")
	}

	redisClient := database.ConnectRedis(cfg)
	defer redisClient.Close()

	sessionProducer := kafka.NewProducer(cfg, cfg.SessionEventsTopic)
	defer sessionProducer.Close()
	assessmentProducer := kafka.NewProducer(cfg, cfg.AssessmentEventsTopic)
	defer assessmentProducer.Close()

	catalog, err := beat.LoadCatalog(cfg.BeatCatalogPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load beat catalog")
	}
	planner := beat.NewPlanner(catalog)
	renderer := beat.NewCachedRenderer(redisClient, cfg.BeatBaseURL, cfg.BeatCacheTTL)

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize token manager")
	}
	var oidcAuth *auth.OIDCAuthenticator
	if cfg.OIDCIssuer != "" {
		oidcAuth, err = auth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to initialize OIDC authenticator")
		}
	}

	identityService := identity.NewService(repo, jwtManager)
	patientService := patients.NewService(repo)
	sessionService := session.NewService(repo, planner, renderer, sessionProducer)
	assessmentService := assessment.NewService(repo, assessmentProducer)
	progressService := progress.NewService(repo)

	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	public := router.PathPrefix("/api/v1").Subrouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(jwtManager))

	identity.NewHandler(identityService, oidcAuth).Register(public, api)
	patients.NewHandler(patientService).Register(api)
	session.NewHandler(sessionService).Register(api)
	assessment.NewHandler(assessmentService).Register(api)
	progress.NewHandler(progressService).Register(api)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("Therapy service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start therapy service")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down therapy service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Therapy service forced to shutdown")
	}
	logger.Log.Info("Therapy service stopped")
}
