package model

import "time"

// Task is one entry of the todo list.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	IsCompleted Completion `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Task) RecordID() int          { return t.ID }
func (t Task) WithID(id int) Task     { t.ID = id; return t }
func (t Task) CreatedTime() time.Time { return t.CreatedAt }
func (t Task) Done() bool             { return t.IsCompleted == Completed }
func (t Task) HasDue() bool           { return t.DueDate != nil }

func (t Task) WithTimestamps(created, updated time.Time) Task {
	t.CreatedAt, t.UpdatedAt = created, updated
	return t
}
