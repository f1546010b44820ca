package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kickstreet/internal/data/repository"
	"kickstreet/internal/usecase"
	"kickstreet/internal/wire"
	"kickstreet/pkg/database"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/storage"
	"kickstreet/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		if err := database.Migrate(cmd.Context(), db); err != nil {
			logger.Error("Failed to apply schema", zap.Error(err))
			return err
		}

		images, err := storage.NewCloudinaryStore(config.Cloudinary, logger)
		if err != nil {
			logger.Error("Failed to init image storage", zap.Error(err))
			return err
		}

		deps := usecase.Deps{
			Mailer:  mailer.New(config.Email, config.App.Debug, logger),
			Payment: payment.NewStripeGateway(config.Payment, logger),
			Images:  images,
			Tokens:  utils.NewTokenIssuer(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour),
		}

		repos := repository.NewRepository(db, logger)
		if n, err := repos.Session.CleanExpiredSessions(cmd.Context()); err != nil {
			logger.Warn("Failed to clean expired sessions", zap.Error(err))
		} else if n > 0 {
			logger.Info("Expired sessions removed", zap.Int64("count", n))
		}

		app := wire.Wiring(repos, db, config, deps, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return APIServer(ctx, app.Router, config.App.Port, logger)
	},
}

// APIServer serves route on port until ctx is cancelled, then drains in-flight requests.
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
