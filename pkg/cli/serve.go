package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/keepsake-app/keepsake/pkg/cli/config"
	httpctrl "github.com/keepsake-app/keepsake/pkg/controller/http"
	"github.com/keepsake-app/keepsake/pkg/service/worker"
	"github.com/keepsake-app/keepsake/pkg/usecase"
	"github.com/keepsake-app/keepsake/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var policyPath string
	var reconcileInterval time.Duration
	var repoCfg config.Repository
	var mediaCfg config.Media

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("KEEPSAKE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "media-policy",
			Usage:       "Path to TOML media policy file (upload size, allowed formats)",
			Sources:     cli.EnvVars("KEEPSAKE_MEDIA_POLICY"),
			Destination: &policyPath,
		},
		&cli.DurationFlag{
			Name:        "reconcile-interval",
			Usage:       "Interval of the group reference scan (0 disables the worker)",
			Value:       time.Hour,
			Sources:     cli.EnvVars("KEEPSAKE_RECONCILE_INTERVAL"),
			Destination: &reconcileInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, mediaCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := config.LoadPolicy(policyPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load media policy")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			mediaStore, err := mediaCfg.Configure(ctx, policy)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize media store")
			}

			uc := usecase.New(repo, mediaStore)

			var reconcileWorker *worker.ReconcileWorker
			if reconcileInterval > 0 {
				reconcileWorker = worker.NewReconcileWorker(repo, reconcileInterval)
				if err := reconcileWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reconcile worker")
				}
			}

			handler := httpctrl.New(uc,
				httpctrl.WithMaxUploadSize(policy.MaxUploadSize()),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reconcileWorker != nil {
					reconcileWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
