package domain

import "time"

// Goal is a node in the yearly -> monthly -> weekly -> daily hierarchy.
// Goals are independent of reports; tasks may reference a goal by id.
type Goal struct {
	ID           string
	ParentID     *string
	Title        string
	Description  string
	Period       GoalPeriod
	TargetDate   *time.Time
	Status       GoalStatus
	ProgressRate int // 0-100

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GoalNode is a goal with its resolved children, used for tree assembly.
type GoalNode struct {
	Goal     *Goal
	Children []*GoalNode
}
