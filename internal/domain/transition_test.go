package domain

import "testing"

func TestCanTransition(t *testing.T) {
	allStatuses := []TaskStatus{
		TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled,
	}

	allowed := map[TaskStatus][]TaskStatus{
		TaskStatusOpen:       {TaskStatusInProgress, TaskStatusCancelled},
		TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
		TaskStatusCancelled:  {TaskStatusOpen},
		TaskStatusCompleted:  {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_CompletedIsTerminal(t *testing.T) {
	for _, to := range []TaskStatus{
		TaskStatusOpen, TaskStatusInProgress, TaskStatusCancelled,
	} {
		if CanTransition(TaskStatusCompleted, to) {
			t.Errorf("COMPLETED must not transition to %s", to)
		}
	}
}

func TestUrgencyRank(t *testing.T) {
	tests := []struct {
		priority TaskPriority
		rank     int
	}{
		{TaskPriorityLow, 1},
		{TaskPriorityMedium, 2},
		{TaskPriorityHigh, 3},
		{TaskPriorityCritical, 4},
	}

	for _, tt := range tests {
		if got := tt.priority.UrgencyRank(); got != tt.rank {
			t.Errorf("%s.UrgencyRank() = %d, want %d", tt.priority, got, tt.rank)
		}
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range []TaskStatus{
		TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled,
	} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TaskStatus("ARCHIVED").IsValid() {
		t.Error("ARCHIVED should not be valid")
	}
	if TaskStatus("").IsValid() {
		t.Error("empty status should not be valid")
	}
}
