package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/shelf/internal/model"
)

const dateLayout = "2006-01-02"

// maxTitle keeps list rows on one line.
const maxTitle = 60

func clip(s string) string {
	if len([]rune(s)) > maxTitle {
		return string([]rune(s)[:maxTitle-3]) + "..."
	}
	return s
}

// Due formats an optional due date.
func Due(d *time.Time) string {
	if d == nil {
		return "(no due date)"
	}
	return d.Format(dateLayout)
}

// TaskLine renders a task as a single list row.
func TaskLine(t model.Task) string {
	th := Current()
	box, style := th.Muted.Render(th.BoxUnchecked), th.Pending
	if t.Done() {
		box, style = th.Success.Render(th.BoxChecked), th.Done
	}
	return fmt.Sprintf("%s %s %s %s  %s",
		th.Muted.Render(fmt.Sprintf("%3d.", t.ID)),
		box,
		style.Render(clip(t.Title)),
		th.Accent.Render("("+t.Priority.String()+")"),
		th.Muted.Render("due "+Due(t.DueDate)),
	)
}

// TaskDetail renders every field of a task.
func TaskDetail(t model.Task, now time.Time) []string {
	lines := []string{
		Current().Title.Render(fmt.Sprintf("Task %d", t.ID)),
		"title:       " + t.Title,
		"priority:    " + t.Priority.String(),
		"status:      " + t.IsCompleted.String(),
		"due:         " + Due(t.DueDate),
	}
	if t.Description != "" {
		lines = append(lines, "description: "+t.Description)
	}
	return append(lines, timestamps(t.CreatedAt, t.UpdatedAt, now)...)
}

// BookLine renders a library item as a single list row.
func BookLine(b model.LibraryItem) string {
	th := Current()
	mark := th.Muted.Render(th.BoxUnchecked)
	if b.IsRead == model.Read {
		mark = th.Success.Render(th.BoxChecked)
	}
	return fmt.Sprintf("%s %s %s %s %s",
		th.Muted.Render(fmt.Sprintf("%3d.", b.ID)),
		mark,
		clip(b.Title),
		th.Muted.Render("by "+b.Author),
		th.Accent.Render(fmt.Sprintf("[%s, %d]", b.Genre, b.PublicationYear)),
	)
}

// BookDetail renders every field of a library item.
func BookDetail(b model.LibraryItem, now time.Time) []string {
	lines := []string{
		Current().Title.Render(fmt.Sprintf("Book %d", b.ID)),
		"title:       " + b.Title,
		"author:      " + b.Author,
		"genre:       " + b.Genre,
		fmt.Sprintf("year:        %d", b.PublicationYear),
		"status:      " + b.IsRead.String(),
	}
	return append(lines, timestamps(b.CreatedAt, b.UpdatedAt, now)...)
}

func timestamps(created, updated, now time.Time) []string {
	out := []string{Muted("created:     " + humanize.RelTime(created, now, "ago", "from now"))}
	if !updated.IsZero() && !updated.Equal(created) {
		out = append(out, Muted("updated:     "+humanize.RelTime(updated, now, "ago", "from now")))
	}
	return out
}

// Header renders a title followed by labelled counts.
func Header(title string, parts ...string) string {
	return Current().Title.Render(title) + "   " + strings.Join(parts, "  ")
}
