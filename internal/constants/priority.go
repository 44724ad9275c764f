package constants

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	DefaultPriority = PriorityMedium
	TitleMaxLength  = 100
)

// Priorities lists every accepted priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
