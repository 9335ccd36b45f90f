package stores

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mesh-intelligence/daybook/pkg/store"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// Filter names shared across kinds.
const (
	ByUserID     = "byUserId"
	ByProjectID  = "byProjectId"
	ByParentID   = "byParentId"
	ByGoalID     = "byGoalId"
	ByTaskID     = "byTaskId"
	ByHabitID    = "byHabitId"
	ByDayID      = "byDayId"
	ByCategoryID = "byCategoryId"
	ByStatus     = "byStatus"
	ByCompleted  = "byCompleted"
	ByFrequency  = "byFrequency"
	ByDate       = "byDate"
	ByKind       = "byKind"
	ByEmail      = "byEmail"
)

// Registry holds one store per entity kind.
type Registry struct {
	Achievements *store.Store[types.Achievement]
	Categories   *store.Store[types.Category]
	DailyGoals   *store.Store[types.DailyGoal]
	Days         *store.Store[types.Day]
	Goals        *store.Store[types.Goal]
	Habits       *store.Store[types.Habit]
	HabitLogs    *store.Store[types.HabitLog]
	Projects     *store.Store[types.Project]
	Tags         *store.Store[types.Tag]
	Tasks        *store.Store[types.Task]
	Templates    *store.Store[types.Template]
	TimeEntries  *store.Store[types.TimeEntry]
	Users        *store.Store[types.User]

	resets map[string]func()
	sizes  map[string]func() int
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger *slog.Logger
	policy store.SelectionPolicy
}

// WithLogger sets the logger handed to every store.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSelectionPolicy sets the SetAll selection policy of every store.
func WithSelectionPolicy(p store.SelectionPolicy) Option {
	return func(o *options) { o.policy = p }
}

// New builds a Registry with an empty store for every standard kind.
func New(opts ...Option) *Registry {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		resets: make(map[string]func()),
		sizes:  make(map[string]func() int),
	}

	r.Achievements = build(r, o, types.KindAchievements,
		store.WithFilter(ByUserID, store.FieldEquals(func(a types.Achievement) string { return a.UserID })),
	)
	r.Categories = build(r, o, types.KindCategories,
		store.WithFilter(ByUserID, store.FieldEquals(func(c types.Category) string { return c.UserID })),
	)
	r.DailyGoals = build(r, o, types.KindDailyGoals,
		store.WithFilter(ByDayID, store.FieldEquals(func(g types.DailyGoal) string { return g.DayID })),
		store.WithFilter(ByUserID, store.FieldEquals(func(g types.DailyGoal) string { return g.UserID })),
		store.WithFilter(ByCompleted, store.FieldEquals(func(g types.DailyGoal) string { return strconv.FormatBool(g.Completed) })),
	)
	r.Days = build(r, o, types.KindDays,
		store.WithFilter(ByUserID, store.FieldEquals(func(d types.Day) string { return d.UserID })),
		store.WithFilter(ByDate, store.FieldEquals(func(d types.Day) string { return d.Date })),
	)
	r.Goals = build(r, o, types.KindGoals,
		store.WithFilter(ByUserID, store.FieldEquals(func(g types.Goal) string { return g.UserID })),
		store.WithFilter(ByStatus, store.FieldEquals(func(g types.Goal) string { return g.Status })),
		store.WithFilter(ByCategoryID, store.FieldEquals(func(g types.Goal) string { return g.CategoryID })),
	)
	r.Habits = build(r, o, types.KindHabits,
		store.WithFilter(ByUserID, store.FieldEquals(func(h types.Habit) string { return h.UserID })),
		store.WithFilter(ByFrequency, store.FieldEquals(func(h types.Habit) string { return h.Frequency })),
		store.WithFilter(ByCategoryID, store.FieldEquals(func(h types.Habit) string { return h.CategoryID })),
	)
	r.HabitLogs = build(r, o, types.KindHabitLogs,
		store.WithFilter(ByHabitID, store.FieldEquals(func(l types.HabitLog) string { return l.HabitID })),
		store.WithFilter(ByDate, store.FieldEquals(func(l types.HabitLog) string { return l.Date })),
	)
	r.Projects = build(r, o, types.KindProjects,
		store.WithFilter(ByUserID, store.FieldEquals(func(p types.Project) string { return p.UserID })),
		store.WithFilter(ByStatus, store.FieldEquals(func(p types.Project) string { return p.Status })),
	)
	r.Tags = build(r, o, types.KindTags,
		store.WithFilter(ByUserID, store.FieldEquals(func(t types.Tag) string { return t.UserID })),
	)
	r.Tasks = build(r, o, types.KindTasks,
		store.WithFilter(ByProjectID, store.FieldEquals(func(t types.Task) string { return t.ProjectID })),
		store.WithFilter(ByUserID, store.FieldEquals(func(t types.Task) string { return t.UserID })),
		store.WithFilter(ByStatus, store.FieldEquals(func(t types.Task) string { return t.Status })),
		store.WithFilter(ByParentID, store.FieldEquals(func(t types.Task) string { return t.ParentID })),
		store.WithFilter(ByGoalID, store.FieldEquals(func(t types.Task) string { return t.GoalID })),
	)
	r.Templates = build(r, o, types.KindTemplates,
		store.WithFilter(ByUserID, store.FieldEquals(func(t types.Template) string { return t.UserID })),
		store.WithFilter(ByKind, store.FieldEquals(func(t types.Template) string { return t.Kind })),
	)
	r.TimeEntries = build(r, o, types.KindTimeEntries,
		store.WithFilter(ByTaskID, store.FieldEquals(func(e types.TimeEntry) string { return e.TaskID })),
		store.WithFilter(ByProjectID, store.FieldEquals(func(e types.TimeEntry) string { return e.ProjectID })),
		store.WithFilter(ByUserID, store.FieldEquals(func(e types.TimeEntry) string { return e.UserID })),
	)
	r.Users = build(r, o, types.KindUsers,
		store.WithFilter(ByEmail, store.FieldEquals(func(u types.User) string { return u.Email })),
	)

	return r
}

// build constructs one store and records its kind-level hooks. The filter
// registrations are fixed at compile time, so a failure is a programming
// error.
func build[T types.Entity](r *Registry, o options, kind string, filters ...store.Option[T]) *store.Store[T] {
	opts := append([]store.Option[T]{
		store.WithName[T](kind),
		store.WithLogger[T](o.logger),
		store.WithSelectionPolicy[T](o.policy),
	}, filters...)
	s, err := store.New(opts...)
	if err != nil {
		panic(fmt.Sprintf("stores: building %s: %v", kind, err))
	}
	r.resets[kind] = s.Reset
	r.sizes[kind] = s.Len
	return s
}

// Kinds returns the kind names in enumeration order.
func (r *Registry) Kinds() []string {
	return append([]string(nil), types.StandardKinds...)
}

// Len returns the item count of the named kind.
func (r *Registry) Len(kind string) (int, error) {
	size, ok := r.sizes[kind]
	if !ok {
		return 0, fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
	return size(), nil
}

// Reset resets every store.
func (r *Registry) Reset() {
	for _, kind := range types.StandardKinds {
		r.resets[kind]()
	}
}
