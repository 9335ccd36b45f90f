package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <kind> <json|->",
		Short: "Create a record from a JSON object",
		Long: `Create stores a new record. The record is a JSON object given inline or,
with "-", read from stdin. A missing id is assigned (UUID v7).

Example:
  daybook create tasks '{"userId":"u1","title":"Write report","status":"todo"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			raw, err := readPayload(cmd, args[1])
			if err != nil {
				return err
			}
			return a.withSession(cmd, []string{kind}, func(s *session) error {
				h, _ := s.handler(kind)
				v, err := h.create(cmd.Context(), raw)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), v)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.(types.Entity).EntityID())
				return nil
			})
		},
	}
}
