package domain

type TaskCategory string

const (
	CategoryContinuous TaskCategory = "continuous"
	CategoryShortTerm  TaskCategory = "short_term"
)

// ValidTaskCategories is the canonical set of accepted task category strings.
var ValidTaskCategories = map[string]bool{
	"continuous": true, "short_term": true,
}

type TaskStatus string

const (
	TaskPlanned    TaskStatus = "planned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type GoalPeriod string

const (
	PeriodYearly  GoalPeriod = "yearly"
	PeriodMonthly GoalPeriod = "monthly"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodDaily   GoalPeriod = "daily"
)

// ValidGoalPeriods is the canonical set of accepted goal period strings.
var ValidGoalPeriods = map[string]bool{
	"yearly": true, "monthly": true, "weekly": true, "daily": true,
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalAchieved  GoalStatus = "achieved"
	GoalAbandoned GoalStatus = "abandoned"
)

type ResolutionOutcome string

const (
	OutcomeDismissed ResolutionOutcome = "dismissed"
	OutcomeMoved     ResolutionOutcome = "moved"
)
