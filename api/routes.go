package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spend-analytics/internal/config"
	"github.com/carson-networks/spend-analytics/internal/handlers/v1/analysis"
	"github.com/carson-networks/spend-analytics/internal/handlers/v1/status"
	"github.com/carson-networks/spend-analytics/internal/handlers/v1/transaction"
	"github.com/carson-networks/spend-analytics/internal/logging"
	"github.com/carson-networks/spend-analytics/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Config  *config.Config
	Service *service.Service
}

// Handler builds the HTTP handler serving every endpoint.
func (r *Rest) Handler() http.Handler {
	huma.NewError = newError

	router := chi.NewMux()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.Config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
		MaxAge:         300,
	}))

	api := humachi.New(router, huma.DefaultConfig("Spend Analytics", "1.0.0"))
	api.UseMiddleware(logging.LoggingMiddleware(r.Logger))

	transaction.NewUploadHandler(r.Service.Transaction, r.Config.MaxUploadBytes).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	analysis.NewSummaryHandler(r.Service.Analytics).Register(api)
	analysis.NewTrendsHandler(r.Service.Analytics).Register(api)
	analysis.NewCategoryDetailsHandler(r.Service.Analytics).Register(api)
	analysis.NewInsightHandler(r.Service.Analytics).Register(api)
	status.NewHandler(r.Service.Transaction).Register(api)

	return router
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		r.Logger.Info("HttpServer.Serve.shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.stopped")
	return nil
}
