// Command tourcli plans a route between two places from the terminal. It
// talks to the same GraphHopper APIs as the HTTP service and supports the
// wider travel-mode list plus optional upstream retries.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fantastic-tour/service-routing/internal/application"
	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/fantastic-tour/service-routing/internal/format"
	"github.com/fantastic-tour/service-routing/internal/geocode"
	"github.com/fantastic-tour/service-routing/internal/routing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tourcli",
		Short:         "Plan routes between two places via GraphHopper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd())
	return root
}

type planFlags struct {
	from    string
	to      string
	vehicle string
	units   string
	retry   bool
	verbose bool
	timeout time.Duration
}

func newPlanCmd() *cobra.Command {
	flags := &planFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route from an origin to a destination",
		Example: `  tourcli plan --from "Manila" --to "Quezon City"
  tourcli plan --from Berlin --to Hamburg --vehicle bike --units imperial --retry`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.from, "from", "", "origin location (required)")
	cmd.Flags().StringVar(&flags.to, "to", "", "destination location (required)")
	cmd.Flags().StringVar(&flags.vehicle, "vehicle", "car", "travel mode")
	cmd.Flags().StringVar(&flags.units, "units", "metric", "unit system: metric or imperial")
	cmd.Flags().BoolVar(&flags.retry, "retry", false, "retry transient upstream failures")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", time.Minute, "overall deadline for the plan")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runPlan(cmd *cobra.Command, flags *planFlags) error {
	v := viper.New()
	v.SetEnvPrefix("TOUR")
	v.AutomaticEnv()

	apiKey := strings.TrimSpace(v.GetString("API_KEY"))
	if apiKey == "" {
		return fmt.Errorf("TOUR_API_KEY must be set to a GraphHopper API key")
	}

	units, err := format.ParseUnitSystem(flags.units)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if flags.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	vehicles := planning.ExtendedVehicles()
	var geocoder planning.Geocoder = geocode.NewClient(v.GetString("GEOCODE_URL"), apiKey,
		geocode.WithLogger(log))
	var router planning.Router = routing.NewClient(v.GetString("ROUTE_URL"), apiKey,
		routing.WithVehicles(vehicles),
		routing.WithLogger(log))
	if flags.retry {
		geocoder = application.NewRetryingGeocoder(geocoder, log)
		router = application.NewRetryingRouter(router, log)
	}

	planner := application.NewPlannerService(geocoder, router, vehicles, log)

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	plan, err := planner.PlanRoute(ctx, flags.from, flags.to, flags.vehicle)
	if err != nil {
		var planErr *application.PlanError
		if errors.As(err, &planErr) && planErr.Informational() {
			// Same location is a valid answer, not a failure.
			fmt.Fprintln(cmd.OutOrStdout(), planErr.Message)
			return nil
		}
		return err
	}

	printPlan(cmd, plan, units)
	return nil
}

func printPlan(cmd *cobra.Command, plan *application.RoutePlan, units format.UnitSystem) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "From: %s\n", plan.OriginName)
	fmt.Fprintf(w, "To:   %s\n", plan.DestinationName)
	fmt.Fprintf(w, "Distance: %s  Duration: %s  (%s)\n",
		format.Distance(plan.DistanceMeters, units),
		format.Duration(plan.DurationMillis),
		plan.Vehicle,
	)
	if len(plan.Instructions) > 0 {
		fmt.Fprintln(w)
		for i, in := range plan.Instructions {
			fmt.Fprintf(w, "%3d. %s (%s)\n", i+1, in.Text, format.Distance(in.DistanceMeters, units))
		}
	}
	fmt.Fprintf(w, "\nMap: %s\n", format.MapsURL(plan.Origin, plan.Destination, plan.Vehicle))
}
