package main

import (
	"log/slog"

	"github.com/couchcryptid/delivery-area-service/internal/adapter/locality"
	"github.com/couchcryptid/delivery-area-service/internal/config"
	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/couchcryptid/delivery-area-service/internal/observability"
	"github.com/couchcryptid/delivery-area-service/internal/orchestrator"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs, built once the flags are parsed.
type app struct {
	cfg     *config.Config
	area    domain.ServiceArea
	metrics *observability.Metrics

	verbose   bool
	noGeocode bool
}

func newRootCmd(metrics *observability.Metrics) *cobra.Command {
	a := &app{metrics: metrics}

	root := &cobra.Command{
		Use:   "areacheck",
		Short: "Check whether addresses fall inside the delivery service area",
		Long: `
areacheck runs the same two-tier check as the HTTP service: a postcode match
first, then an approximate geocode and a distance check when the postcode is
missing or unrecognized.
`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			area, err := cfg.ServiceArea()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.area = area
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log geocoder activity to stderr")
	root.PersistentFlags().BoolVar(&a.noGeocode, "no-geocode", false, "disable the geocoding fallback")

	root.AddCommand(newCheckCmd(a), newDescribeCmd(a), newWatchCmd(a))
	return root
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	return observability.NewCLILogger(cmd.ErrOrStderr(), a.verbose)
}

// orchestrator wires the validator and, unless disabled, the locality geocoder.
func (a *app) orchestrator(cmd *cobra.Command) *orchestrator.Orchestrator {
	logger := a.logger(cmd)

	var geocoder domain.Geocoder
	if a.cfg.GeocoderEnabled && !a.noGeocode {
		geocoder = locality.New(locality.DefaultGazetteer(), logger,
			locality.WithLatency(a.cfg.GeocoderLatency),
			locality.WithPostcodeFilter(a.area.IsAcceptedPrefix),
		)
	}
	return orchestrator.New(domain.NewValidator(a.area), geocoder, logger, a.metrics)
}
