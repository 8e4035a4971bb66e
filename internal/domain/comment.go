package domain

import "time"

// Comment is a discussion entry on a task. Comments are append-only and do
// not participate in task versioning.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
