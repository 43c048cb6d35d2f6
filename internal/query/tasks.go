package query

import (
	"time"

	"github.com/idilsaglam/shelf/internal/model"
)

// TaskFilter narrows a task list. Zero fields do not filter.
type TaskFilter struct {
	Status   *model.Completion
	Priority *model.Priority
	DueFrom  *time.Time
	DueTo    *time.Time
}

// FilterTasks applies f and returns the result in the default task order.
func FilterTasks(tasks []model.Task, f TaskFilter) []model.Task {
	out := Equal(tasks, func(t model.Task) model.Completion { return t.IsCompleted }, f.Status)
	out = Equal(out, func(t model.Task) model.Priority { return t.Priority }, f.Priority)
	out = DateBetween(out, func(t model.Task) *time.Time { return t.DueDate }, f.DueFrom, f.DueTo)
	return SortTasks(out)
}

// SortTasks orders by due date (undated last), then priority high to low,
// then id.
func SortTasks(tasks []model.Task) []model.Task {
	return Sorted(tasks,
		NilsLastTime(func(t model.Task) *time.Time { return t.DueDate }),
		Desc(func(t model.Task) model.Priority { return t.Priority }),
		Asc(func(t model.Task) int { return t.ID }),
	)
}

// DueWithin returns tasks due between today and today+days, inclusive.
// Today is the calendar date of now in its own location; due dates are
// stored as UTC midnights.
func DueWithin(tasks []model.Task, now time.Time, days int) []model.Task {
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, days)
	return FilterTasks(tasks, TaskFilter{DueFrom: &from, DueTo: &to})
}

// TaskSummary aggregates a task list.
type TaskSummary struct {
	Total        int
	ByPriority   []Count[model.Priority]
	ByCompletion []Count[model.Completion]
}

func SummarizeTasks(tasks []model.Task) TaskSummary {
	return TaskSummary{
		Total:        len(tasks),
		ByPriority:   CountBy(tasks, func(t model.Task) model.Priority { return t.Priority }),
		ByCompletion: CountBy(tasks, func(t model.Task) model.Completion { return t.IsCompleted }),
	}
}

// Completed returns how many tasks are done.
func (s TaskSummary) Completed() int {
	for _, c := range s.ByCompletion {
		if c.Value == model.Completed {
			return c.N
		}
	}
	return 0
}
