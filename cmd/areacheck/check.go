package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// checkLine is one --json output record.
type checkLine struct {
	Address string `json:"address"`
	domain.Verdict
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		lat, lon float64
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check [address...]",
		Short: "Check one or more addresses",
		Long: `Checks each address argument, or one address per line from stdin when no
arguments are given, and prints one verdict per address.

$ areacheck check "10 Park Road, KT2 6QL" "High Street, Guildford"
valid	10 Park Road, KT2 6QL	KT2 6QL is within our Kingston upon Thames service area.
invalid	High Street, Guildford	This address is 16.8 miles from Kingston upon Thames, ...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
			if latSet != lonSet {
				return errors.New("--lat and --lon must be given together")
			}
			var coords *domain.Coordinate
			if latSet {
				coords = &domain.Coordinate{Lat: lat, Lon: lon}
				if !coords.Valid() {
					return fmt.Errorf("coordinates out of range: %g,%g", lat, lon)
				}
			}

			addresses := args
			if len(addresses) == 0 {
				if isTerminal(cmd.InOrStdin()) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Enter addresses to check, one per line. Ctrl-D to finish.")
				}
				var err error
				if addresses, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			orch := a.orchestrator(cmd)
			out := cmd.OutOrStdout()
			for _, addr := range addresses {
				v, err := orch.Validate(cmd.Context(), addr, coords)
				if err != nil {
					return fmt.Errorf("check %q: %w", addr, err)
				}
				if err := printVerdict(out, addr, v, asJSON); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the address")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the address")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per address")
	return cmd
}

func printVerdict(w io.Writer, address string, v domain.Verdict, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(checkLine{Address: address, Verdict: v})
	}
	status := "invalid"
	if v.IsValid {
		status = "valid"
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", status, address, v.Message)
	return err
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}
	return lines, nil
}
