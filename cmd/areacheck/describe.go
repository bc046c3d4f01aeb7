package main

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the configured service area",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				_, err := fmt.Fprintln(out, a.area.Describe())
				return err
			}
			return json.NewEncoder(out).Encode(struct {
				Name             string            `json:"name"`
				Center           domain.Coordinate `json:"center"`
				RadiusMiles      float64           `json:"radius_miles"`
				PostcodePrefixes []string          `json:"postcode_prefixes"`
			}{a.area.Name(), a.area.Center(), a.area.RadiusMiles(), a.area.Prefixes()})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the area as JSON")
	return cmd
}
