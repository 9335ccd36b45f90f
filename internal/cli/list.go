package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List records of a kind, optionally through a named filter",
		Long: `List prints every record of a kind as JSON. With --filter name=key the
kind's named filter is applied; "daybook kinds" shows the filters each
kind offers.

Example:
  daybook list tasks
  daybook list tasks --filter byProjectId=p1
  daybook list dailyGoals --filter byCompleted=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			name, key, err := parseFilter(filter)
			if err != nil {
				return err
			}
			return a.withSession(cmd, []string{kind}, func(s *session) error {
				h, _ := s.handler(kind)
				items, err := h.list(name, key)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "named filter as name=key")
	return cmd
}

// parseFilter splits a name=key filter argument. Empty means no filter.
func parseFilter(arg string) (name, key string, err error) {
	if arg == "" {
		return "", "", nil
	}
	name, key, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", "", userError(fmt.Errorf("invalid filter %q (expected name=key)", arg))
	}
	return name, key, nil
}
