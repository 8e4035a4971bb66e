package domain

// allowedTransitions is the status state machine. It is package-private and
// never mutated after init; COMPLETED has no outgoing edges.
var allowedTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:       {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
	TaskStatusCancelled:  {TaskStatusOpen},
	TaskStatusCompleted:  {},
}

// CanTransition reports whether the state machine allows from -> to.
// Self-transitions are not covered here: callers treat them as no-ops
// before consulting the table.
func CanTransition(from, to TaskStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
