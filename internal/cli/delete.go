package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/daybook/pkg/stores"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// cascade describes how deleting one record of a kind removes its
// dependents: the kinds that must be loaded and the registry helper.
type cascade struct {
	kinds  []string
	remove func(r *stores.Registry, id string) stores.Removed
}

var cascades = map[string]cascade{
	types.KindTasks: {
		kinds:  []string{types.KindTasks, types.KindTimeEntries},
		remove: (*stores.Registry).RemoveTask,
	},
	types.KindProjects: {
		kinds:  []string{types.KindProjects, types.KindTasks, types.KindTimeEntries},
		remove: (*stores.Registry).RemoveProject,
	},
	types.KindHabits: {
		kinds:  []string{types.KindHabits, types.KindHabitLogs},
		remove: (*stores.Registry).RemoveHabit,
	},
	types.KindDays: {
		kinds:  []string{types.KindDays, types.KindDailyGoals},
		remove: (*stores.Registry).RemoveDay,
	},
}

func newDeleteCmd(a *app) *cobra.Command {
	var withDependents bool
	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record",
		Long: `Delete removes one record. With --cascade, dependents go too: a task's
subtasks and time entries, a project's tasks and time entries, a habit's
logs, a day's daily goals.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			if !withDependents {
				return a.withSession(cmd, []string{kind}, func(s *session) error {
					h, _ := s.handler(kind)
					if err := h.remove(cmd.Context(), id); err != nil {
						return err
					}
					return a.reportDeleted(cmd, stores.Removed{kind: {id}})
				})
			}

			c, ok := cascades[kind]
			if !ok {
				return userError(fmt.Errorf("--cascade is not supported for %q (supported: %v)", kind, slices.Sorted(maps.Keys(cascades))))
			}
			return a.withSession(cmd, c.kinds, func(s *session) error {
				removed := c.remove(s.registry, id)
				if len(removed[kind]) == 0 {
					return userError(fmt.Errorf("%s %q: %w", kind, id, types.ErrNotFound))
				}
				for _, k := range slices.Sorted(maps.Keys(removed)) {
					h, _ := s.handler(k)
					for _, rid := range removed[k] {
						if err := h.unlink(cmd.Context(), rid); err != nil {
							return err
						}
					}
				}
				return a.reportDeleted(cmd, removed)
			})
		},
	}
	cmd.Flags().BoolVar(&withDependents, "cascade", false, "also delete dependent records")
	return cmd
}

func (a *app) reportDeleted(cmd *cobra.Command, removed stores.Removed) error {
	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), removed)
	}
	for _, k := range slices.Sorted(maps.Keys(removed)) {
		for _, id := range removed[k] {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", k, id)
		}
	}
	return nil
}
