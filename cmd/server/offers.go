package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/pkg/utils"
)

func newOffersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offers ORIGIN YYYY-MM-DD [DEST]",
		Short: "Print the upstream offers for a route and day",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin := strings.ToUpper(args[0])
			if !utils.IsAirportCode(origin) {
				return fmt.Errorf("invalid origin %q", args[0])
			}
			date, err := utils.ParseDate(args[1])
			if err != nil {
				return err
			}
			var dest string
			if len(args) == 3 {
				dest = strings.ToUpper(args[2])
				if !utils.IsAirportCode(dest) {
					return fmt.Errorf("invalid destination %q", args[2])
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			offers, err := a.offerRepo.FindOffers(ctx, entity.SingleDay(origin, dest, date))
			if err != nil {
				return err
			}
			if len(offers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no offers")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FLIGHT\tFROM\tTO\tDEPARTS\tPRICE")
			for _, o := range offers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f %s\n", utils.NormalizeFlightCode(o.FlightCode), o.Origin,
					o.Destination, o.DepartureTime.Format("2006-01-02 15:04"), o.Price, o.Currency)
			}
			return w.Flush()
		},
	}
}
