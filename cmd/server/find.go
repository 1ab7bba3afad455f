package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fare-tracker-service/internal/usecase"
	"fare-tracker-service/pkg/utils"
)

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find FLIGHT YYYY-MM-DD",
		Short: "Search the candidate origins for a flight's route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := utils.NormalizeFlightCode(args[0])
			if !utils.IsValidFlightCode(code) {
				return fmt.Errorf("invalid flight code %q", args[0])
			}
			date, err := utils.ParseDate(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			discovery := a.discovery()
			fmt.Fprintf(cmd.ErrOrStderr(), "searching %d origins: %s\n", len(discovery.Origins()), strings.Join(discovery.Origins(), " "))

			offer, err := discovery.Find(ctx, code, date)
			if errors.Is(err, usecase.ErrNotFound) {
				return errors.New(usecase.ReplyFor(err))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s->%s departs %s, %.2f %s\n", code, offer.Origin, offer.Destination,
				offer.DepartureTime.Format("2006-01-02 15:04"), offer.Price, offer.Currency)
			return nil
		},
	}
}
