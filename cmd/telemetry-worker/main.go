package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/config"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/kafka"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/observability/metrics"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init("telemetry-worker")
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionConsumer := kafka.NewConsumer(cfg, cfg.SessionEventsTopic, cfg.KafkaGroupID+"-telemetry")
	defer sessionConsumer.Close()
	assessmentConsumer := kafka.NewConsumer(cfg, cfg.AssessmentEventsTopic, cfg.KafkaGroupID+"-telemetry")
	defer assessmentConsumer.Close()

	go func() {
		if err := sessionConsumer.Consume(ctx, countEvent); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Error("session consumer stopped")
		}
	}()
	go func() {
		if err := assessmentConsumer.Consume(ctx, countEvent); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Error("assessment consumer stopped")
		}
	}()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.TelemetryPort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("Telemetry worker listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start telemetry worker")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down telemetry worker...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Telemetry worker forced to shutdown")
	}
	logger.Log.Info("Telemetry worker stopped")
}

func countEvent(ctx context.Context, event models.Event) error {
	switch event.Type {
	case "session.started":
		metrics.IncSessionsStarted()
	case "session.completed":
		metrics.IncSessionsCompleted()
	case "session.sample":
		metrics.IncSamplesRecorded()
		if adjusted, ok := event.Data["adjusted"].(bool); ok && adjusted {
			metrics.IncTempoAdjustments()
		}
	case "assessment.recorded":
		metrics.IncAssessments()
	default:
		logger.Log.WithField("event_type", event.Type).Debug("ignoring event")
	}
	return nil
}
