package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/internal/usecase"
)

// printNotifier writes notifications to a terminal instead of a chat
type printNotifier struct {
	out io.Writer
}

func (n printNotifier) Send(ctx context.Context, ownerID int64, text string) error {
	_, err := fmt.Fprintf(n.out, "[%d] %s\n\n", ownerID, text)
	return err
}

func newCheckCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one price check cycle over every tracked flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if err := a.openStore(ctx, false); err != nil {
				return err
			}

			var notifier repository.NotifierRepository = printNotifier{out: cmd.OutOrStdout()}
			if !dryRun {
				bot, err := a.telegram()
				if err != nil {
					return err
				}
				notifier = bot
			}

			watcher := usecase.NewPriceWatcher(a.flightRepo, a.offerRepo, notifier, a.log, a.metrics,
				a.cfg.CheckInterval, a.cfg.Currency)
			report, err := watcher.CheckPrices(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked=%d changed=%d unchanged=%d notified=%d skipped=%d failed=%d\n",
				report.Checked, report.Changed, report.Unchanged, report.Notified, report.Skipped, report.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print notifications instead of sending them (prices are still updated)")
	return cmd
}
