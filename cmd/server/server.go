package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fare-tracker-service/internal/infrastructure/router"
	"fare-tracker-service/internal/interface/repository"
	"fare-tracker-service/internal/interface/telegram"
	"fare-tracker-service/internal/usecase"
)

func newServerCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the Telegram bot, the price watcher and the metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if err := a.openStore(ctx, migrate); err != nil {
				return err
			}

			log := a.log
			log.Info("Starting fare tracker", "version", Version, "store", a.cfg.StoreDriver,
				"origins", len(a.cfg.Origins), "checkInterval", a.cfg.CheckInterval)

			bot, err := a.telegram()
			if err != nil {
				return err
			}

			engine := usecase.NewConversationEngine(
				a.flightRepo,
				a.offerRepo,
				repository.NewMemoryPendingAddRepository(),
				a.discovery(),
				router.NewCommandRouter(log),
				log,
				a.metrics,
				a.cfg.MaxFlights,
				a.cfg.Currency,
			)
			watcher := usecase.NewPriceWatcher(a.flightRepo, a.offerRepo, bot, log, a.metrics,
				a.cfg.CheckInterval, a.cfg.Currency)
			botService := telegram.NewBotService(bot, bot, engine, log, 5*time.Second)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("Healthy"))
			})

			server := &http.Server{
				Addr:         ":" + a.cfg.Port,
				Handler:      mux,
				ReadTimeout:  a.cfg.ReadTimeout,
				WriteTimeout: a.cfg.WriteTimeout,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return botService.StartPolling(gctx)
			})
			g.Go(func() error {
				return watcher.Start(gctx)
			})
			g.Go(func() error {
				log.Info("Starting HTTP server", "port", a.cfg.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Error("HTTP server shutdown error", "error", err)
				}
				return nil
			})

			err = g.Wait()
			log.Info("Fare tracker stopped")
			return err
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations on startup")
	return cmd
}
