package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stipendionetto/internal/config"
	"stipendionetto/internal/fisco"
	"stipendionetto/internal/guide"
	"stipendionetto/internal/handlers"
	"stipendionetto/internal/logger"
	"stipendionetto/internal/metrics"
	"stipendionetto/internal/middleware"
	sentryutil "stipendionetto/internal/sentry"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	// Load configuration from .env and environment variables
	config.Load()
	if err := config.Cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Setup(config.Cfg.LogLevel, config.Cfg.LogFormat)

	// Initialize Sentry (non-blocking if SENTRY_DSN is empty)
	sentryutil.Init()
	defer sentryutil.Flush()

	// Embedded tables plus any YAML found in TABELLE_DIR
	registro, err := fisco.CaricaRegistro(config.Cfg.TabelleDir, config.Cfg.AnnoFiscale)
	if err != nil {
		logger.Error("tabelle fiscali non valide", map[string]interface{}{"error": err.Error(), "dir": config.Cfg.TabelleDir})
		os.Exit(1)
	}
	handlers.SetRegistro(registro)
	logger.Info("tabelle fiscali caricate", map[string]interface{}{
		"anni": registro.Anni(), "predefinito": registro.Predefinito(),
	})

	handlers.InitCounter(config.Cfg.CounterFile)

	if err := guide.LoadAll(config.Cfg.GuideDir); err != nil {
		logger.Warn("guide", map[string]interface{}{"error": err.Error()})
		sentryutil.CaptureMessage("guide non caricate: "+err.Error(), sentryutil.LevelWarning(), map[string]string{"phase": "boot"})
	}

	limiter := handlers.NewRateLimiter(
		config.Cfg.RateLimitRPS,
		config.Cfg.RateLimitBurst,
		time.Second,
	)
	defer limiter.Stop()

	// Recovery → SecurityHeaders → RequestID → Metrics → Gzip (if enabled) → Rate Limiter
	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestIDMiddleware)
	if config.Cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	if config.Cfg.GzipEnabled {
		r.Use(middleware.Gzip)
	}
	r.Use(limiter.Middleware)

	r.Route("/api", func(r chi.Router) {
		for _, tipo := range handlers.Tipi() {
			r.Post("/"+tipo, handlers.CalcoloHandler(tipo))
		}
		r.Get("/tabelle", handlers.TabelleHandler)
		r.Post("/report", handlers.ReportHandler)
		r.Post("/busta-paga", handlers.BustaPagaHandler)
		r.Post("/codifica", handlers.CodificaHandler)
		r.Get("/decodifica", handlers.DecodificaHandler)
		r.Get("/guide", handlers.GuideAPIHandler)
		r.Get("/health", handlers.HealthHandler)
		r.Get("/stats", handlers.StatsHandler)
	})

	r.Get("/guide", handlers.GuideListHandler)
	r.Get("/guide/{slug}", handlers.GuidePageHandler)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/guide", http.StatusFound)
	})

	if config.Cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	var handler http.Handler = r
	if config.Cfg.H2CEnabled {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	srv := &http.Server{
		Addr:              ":" + config.Cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", map[string]interface{}{"port": config.Cfg.Port, "h2c": config.Cfg.H2CEnabled})
		fmt.Printf("Stipendio Netto running on http://localhost:%s\n", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server stopping", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", map[string]interface{}{"error": err.Error()})
	}
	handlers.FlushCounter()
}
