package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/daybook/internal/hydrate"
	"github.com/mesh-intelligence/daybook/internal/sqlite"
	"github.com/mesh-intelligence/daybook/pkg/store"
	"github.com/mesh-intelligence/daybook/pkg/stores"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// session is one attached backend plus the store registry mirroring it.
// The caller must defer close.
type session struct {
	backend  *sqlite.Backend
	registry *stores.Registry
	handlers map[string]handler
	metrics  *hydrate.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// open resolves the data directory, attaches the backend and builds a
// handler per kind. Nothing is hydrated yet.
func (a *app) open() (*session, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolving data dir: %w", err))
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return nil, sysError(fmt.Errorf("attaching backend: %w", err))
	}

	reg := prometheus.NewRegistry()
	metrics, err := hydrate.NewMetrics(reg)
	if err != nil {
		backend.Detach()
		return nil, sysError(err)
	}
	registry := stores.New(stores.WithLogger(a.logger), stores.WithSelectionPolicy(a.policy))
	if err := reg.Register(registry.Collector()); err != nil {
		backend.Detach()
		return nil, sysError(err)
	}

	s := &session{
		backend:  backend,
		registry: registry,
		metrics:  metrics,
		gatherer: reg,
		logger:   a.logger,
	}
	if err := s.bind(); err != nil {
		backend.Detach()
		return nil, sysError(err)
	}
	return s, nil
}

// bind creates the handler of every kind.
func (s *session) bind() error {
	r := s.registry
	s.handlers = make(map[string]handler, len(types.StandardKinds))
	binders := []func() error{
		bindKind[types.Achievement](s, types.KindAchievements, r.Achievements),
		bindKind[types.Category](s, types.KindCategories, r.Categories),
		bindKind[types.DailyGoal](s, types.KindDailyGoals, r.DailyGoals),
		bindKind[types.Day](s, types.KindDays, r.Days),
		bindKind[types.Goal](s, types.KindGoals, r.Goals),
		bindKind[types.Habit](s, types.KindHabits, r.Habits),
		bindKind[types.HabitLog](s, types.KindHabitLogs, r.HabitLogs),
		bindKind[types.Project](s, types.KindProjects, r.Projects),
		bindKind[types.Tag](s, types.KindTags, r.Tags),
		bindKind[types.Task](s, types.KindTasks, r.Tasks),
		bindKind[types.Template](s, types.KindTemplates, r.Templates),
		bindKind[types.TimeEntry](s, types.KindTimeEntries, r.TimeEntries),
		bindKind[types.User](s, types.KindUsers, r.Users),
	}
	for _, bind := range binders {
		if err := bind(); err != nil {
			return err
		}
	}
	return nil
}

func bindKind[T types.Entity, PT interface {
	*T
	types.IDSetter
}](s *session, kind string, st *store.Store[T]) func() error {
	return func() error {
		h, err := newKindHandler[T, PT](s, kind, st)
		if err != nil {
			return err
		}
		s.handlers[kind] = h
		return nil
	}
}

func (s *session) close() error {
	return s.backend.Detach()
}

// handler returns the handler of kind, or a user error naming the valid
// kinds.
func (s *session) handler(kind string) (handler, error) {
	h, ok := s.handlers[kind]
	if !ok {
		return nil, userError(fmt.Errorf("unknown kind %q (valid: %s): %w",
			kind, strings.Join(types.StandardKinds, ", "), types.ErrUnknownKind))
	}
	return h, nil
}

// hydrate loads the stores of kinds from the backend concurrently.
func (s *session) hydrate(ctx context.Context, kinds ...string) error {
	refs := make([]hydrate.Refreshable, 0, len(kinds))
	for _, kind := range kinds {
		h, err := s.handler(kind)
		if err != nil {
			return err
		}
		refs = append(refs, h.refresher())
	}
	if err := hydrate.RefreshAll(ctx, refs...); err != nil {
		return sysError(err)
	}
	return nil
}
