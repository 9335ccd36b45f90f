package types

// Entity is satisfied by every daybook record. The ID is assigned by the
// persistence layer and never changes afterwards.
type Entity interface {
	EntityID() string
}

// IDSetter is implemented by pointers to entities. Only persistence calls
// it, when it assigns a fresh ID on creation.
type IDSetter interface {
	SetEntityID(id string)
}

// Standard entity kind names. A kind names one store, one table and one
// JSONL file.
const (
	KindAchievements = "achievements"
	KindCategories   = "categories"
	KindDailyGoals   = "dailyGoals"
	KindDays         = "days"
	KindGoals        = "goals"
	KindHabits       = "habits"
	KindHabitLogs    = "habitLogs"
	KindProjects     = "projects"
	KindTags         = "tags"
	KindTasks        = "tasks"
	KindTemplates    = "templates"
	KindTimeEntries  = "timeEntries"
	KindUsers        = "users"
)

// StandardKinds lists all kinds in enumeration order.
var StandardKinds = []string{
	KindAchievements,
	KindCategories,
	KindDailyGoals,
	KindDays,
	KindGoals,
	KindHabits,
	KindHabitLogs,
	KindProjects,
	KindTags,
	KindTasks,
	KindTemplates,
	KindTimeEntries,
	KindUsers,
}

// IsKind reports whether name is a standard kind.
func IsKind(name string) bool {
	for _, k := range StandardKinds {
		if k == name {
			return true
		}
	}
	return false
}
