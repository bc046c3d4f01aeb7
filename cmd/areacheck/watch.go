package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/orchestrator"
	"github.com/spf13/cobra"
)

// settleGrace is how long watch waits past the quiet period and geocoder
// latency for the final verdict after input ends.
const settleGrace = 2 * time.Second

func newWatchCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check an address field as it is typed",
		Long: `Treats each stdin line as the current contents of an address field, the way
a checkout form sees keystrokes. Lines arriving within DEBOUNCE_INTERVAL of each
other are coalesced, and a verdict is printed only for the latest input.

$ printf 'K\nKT\nKT2 6QL\n' | areacheck watch
valid	KT2 6QL	KT2 6QL is within our Kingston upon Thames service area.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch := a.orchestrator(cmd)
			out := cmd.OutOrStdout()

			results := make(chan orchestrator.Result, 1)
			session := orchestrator.NewSession(orch, func(r orchestrator.Result) {
				select {
				case results <- r:
				default:
					// Drop an unread older result in favor of this one.
					select {
					case <-results:
					default:
					}
					results <- r
				}
			}, a.logger(cmd), a.metrics, orchestrator.WithQuietPeriod(a.cfg.DebounceInterval))
			defer session.Close()

			if isTerminal(cmd.InOrStdin()) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Type an address; each line replaces the last. Ctrl-D to finish.")
			}

			var last, printed uint64
			emit := func(r orchestrator.Result) error {
				printed = r.Seq
				return printVerdict(out, r.Address, r.Verdict, asJSON)
			}

			lines := make(chan string)
			scanErr := make(chan error, 1)
			go func() {
				defer close(lines)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					lines <- scanner.Text()
				}
				scanErr <- scanner.Err()
			}()

			for lines != nil {
				select {
				case line, ok := <-lines:
					if !ok {
						lines = nil
						continue
					}
					last = session.Submit(line, nil)
				case r := <-results:
					if err := emit(r); err != nil {
						return err
					}
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}
			if err := <-scanErr; err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if last == 0 || printed == last {
				return nil
			}

			wait := a.cfg.DebounceInterval + a.cfg.GeocoderLatency + settleGrace
			deadline := time.After(wait)
			for {
				select {
				case r := <-results:
					if err := emit(r); err != nil {
						return err
					}
					if r.Seq == last {
						return nil
					}
				case <-deadline:
					return fmt.Errorf("no verdict for the final input within %s", wait)
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per verdict")
	return cmd
}
