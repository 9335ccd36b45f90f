package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

// kindInfo is one row of the kinds listing.
type kindInfo struct {
	Kind    string   `json:"kind"`
	Count   int      `json:"count"`
	Filters []string `json:"filters"`
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List entity kinds with record counts and filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, types.StandardKinds, func(s *session) error {
				counts, err := storeCounts(s)
				if err != nil {
					return sysError(err)
				}

				rows := make([]kindInfo, 0, len(types.StandardKinds))
				for _, kind := range types.StandardKinds {
					h, _ := s.handler(kind)
					rows = append(rows, kindInfo{Kind: kind, Count: counts[kind], Filters: h.filters()})
				}

				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), rows)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tCOUNT\tFILTERS")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Kind, r.Count, strings.Join(r.Filters, ","))
				}
				return tw.Flush()
			})
		},
	}
}

// storeCounts gathers the store size gauge of every kind.
func storeCounts(s *session) (map[string]int, error) {
	families, err := s.gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	counts := make(map[string]int)
	for _, mf := range families {
		if mf.GetName() != "daybook_store_items" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" {
					counts[l.GetValue()] = int(m.GetGauge().GetValue())
				}
			}
		}
	}
	return counts, nil
}
