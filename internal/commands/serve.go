package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/spend-analytics/api"
	"github.com/carson-networks/spend-analytics/internal/config"
	"github.com/carson-networks/spend-analytics/internal/service"
	"github.com/carson-networks/spend-analytics/internal/storage"
)

func newServeCommand(logger *logrus.Logger) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envConfig, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return err
			}
			if port != "" {
				envConfig.Port = port
			}

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)

			return runServe(cmd.Context(), logger, envConfig, signals)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")

	return cmd
}

// errShutdownSignal stops the serve group when a termination signal arrives.
var errShutdownSignal = errors.New("shutdown signal received")

func runServe(ctx context.Context, logger *logrus.Logger, envConfig *config.Config, signals <-chan os.Signal) error {
	logger.SetLevel(envConfig.LogLevel)
	logger.WithField("port", envConfig.Port).Info("spend-analytics starting")

	store := storage.NewStorage()
	svc := service.NewService(store, envConfig.CurrencySymbol)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Config:  envConfig,
		Service: svc,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpRest.Serve(groupCtx)
	})
	group.Go(func() error {
		select {
		case sig := <-signals:
			logger.WithField("signal", sig.String()).Info("spend-analytics stopping")
			return errShutdownSignal
		case <-groupCtx.Done():
			logger.WithError(context.Cause(groupCtx)).Info("spend-analytics stopping")
			return nil
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errShutdownSignal) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
