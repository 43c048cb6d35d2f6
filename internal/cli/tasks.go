package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/query"
	"github.com/idilsaglam/shelf/internal/ui"
)

// RunTasks dispatches todo subcommands and returns an exit code.
func (a *App) RunTasks(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.TasksHelp()
		return exitUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		a.TasksHelp()
		return exitOK
	case "add":
		return a.taskAdd(ctx, rest)
	case "ls", "list":
		return a.taskList(ctx, rest)
	case "show":
		return a.taskShow(ctx, rest)
	case "edit":
		return a.taskEdit(ctx, rest)
	case "done":
		return a.taskToggle(ctx, rest)
	case "rm":
		return a.taskRemove(ctx, rest)
	case "summary":
		return a.taskSummary(ctx)
	case "browse":
		return a.taskBrowse(ctx)
	}

	a.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(a.errOut)
	a.TasksHelp()
	return exitUsage
}

func (a *App) TasksHelp() {
	fmt.Fprint(a.out, `todo - a task list stored in a JSON file

Usage:
  todo [--data-dir DIR] [--config FILE] <subcommand> [args]

Subcommands:
  add <title...>     Add a task
                     --desc TEXT --due YYYY-MM-DD --priority low|medium|high --status pending|completed
  ls                 List tasks by due date, then priority
                     --status S --priority P --from DATE --to DATE --week --group
  show <id>          Show one task
  edit <id>          Change fields; omitted flags keep their value
                     --title --desc --due --clear-due --priority --status
  done <id>          Toggle completed/pending
  rm <id>            Delete a task (asks for confirmation unless --yes)
  summary            Counts by priority and completion
  browse             Interactive list

Examples:
  todo add "Buy milk" --due 2025-01-31 --priority high
  todo ls --status pending --week
  todo done 2
  todo rm 3 --yes
`)
}

func (a *App) taskAdd(ctx context.Context, args []string) int {
	fs := a.flagSet("add")
	desc := fs.String("desc", "", "description")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	prio := fs.String("priority", "medium", "low, medium or high")
	status := fs.String("status", "pending", "pending or completed")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}

	in := taskInput{
		Title:    strings.TrimSpace(strings.Join(fs.Args(), " ")),
		Due:      strings.TrimSpace(*due),
		Priority: lower(*prio),
		Status:   lower(*status),
	}
	if err := a.validate.Struct(in); err != nil {
		a.fail("add: " + describe(err))
		return exitUsage
	}

	t := model.Task{Title: in.Title, Description: strings.TrimSpace(*desc)}
	t.DueDate, _ = parseDate(in.Due)
	t.Priority, _ = model.ParsePriority(in.Priority)
	t.IsCompleted, _ = model.ParseCompletion(in.Status)

	added, err := a.Tasks.Add(ctx, t)
	if err != nil {
		return a.storeFailed("add", err)
	}
	a.ok(fmt.Sprintf("added task %d", added.ID))
	return exitOK
}

func (a *App) taskList(ctx context.Context, args []string) int {
	fs := a.flagSet("ls")
	status := fs.String("status", "", "pending or completed")
	prio := fs.String("priority", "", "low, medium or high")
	from := fs.String("from", "", "due on or after (YYYY-MM-DD)")
	to := fs.String("to", "", "due on or before (YYYY-MM-DD)")
	week := fs.Bool("week", false, "due within the next 7 days")
	group := fs.Bool("group", false, "group output by pending/done")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}

	patch := taskPatch{Priority: lower(*prio), Status: lower(*status)}
	if err := a.validate.Struct(patch); err != nil {
		a.fail("ls: " + describe(err))
		return exitUsage
	}
	var f query.TaskFilter
	if patch.Status != "" {
		s, _ := model.ParseCompletion(patch.Status)
		f.Status = &s
	}
	if patch.Priority != "" {
		p, _ := model.ParsePriority(patch.Priority)
		f.Priority = &p
	}
	var err error
	if f.DueFrom, err = parseDate(*from); err != nil {
		a.fail("ls: " + err.Error())
		return exitUsage
	}
	if f.DueTo, err = parseDate(*to); err != nil {
		a.fail("ls: " + err.Error())
		return exitUsage
	}

	tasks, err := a.Tasks.Load(ctx)
	if err != nil {
		return a.storeFailed("load", err)
	}
	shown := query.FilterTasks(tasks, f)
	if *week {
		shown = query.DueWithin(shown, a.now(), 7)
	}

	sum := query.SummarizeTasks(tasks)
	th := ui.Current()
	lines := []string{
		ui.Header("Tasks",
			th.Success.Render(th.SymDone), fmt.Sprint(sum.Completed()),
			th.Pending.Render(th.SymPending), fmt.Sprint(sum.Total-sum.Completed()),
			th.Accent.Render("Shown"), fmt.Sprint(len(shown)),
		),
		th.Muted.Render(ui.ProgressBar(sum.Completed(), sum.Total, 28)),
		"",
	}
	if *group {
		lines = append(lines, groupTaskLines(shown)...)
	} else {
		lines = append(lines, taskLines(shown)...)
	}
	lines = append(lines, "", ui.Muted("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(a.out, lines)
	return exitOK
}

func taskLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.Muted("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ui.TaskLine(t))
	}
	return out
}

func groupTaskLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Done() {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	th := ui.Current()
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.Muted("(none)"))
	} else {
		lines = append(lines, taskLines(pend)...)
	}
	lines = append(lines, "", th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, ui.Muted("(none)"))
	} else {
		lines = append(lines, taskLines(done)...)
	}
	return lines
}

func (a *App) taskShow(ctx context.Context, args []string) int {
	id, ok := a.parseID("show", args)
	if !ok {
		return exitUsage
	}
	t, found, err := a.Tasks.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("task", id)
	}
	ui.Panel(a.out, ui.TaskDetail(t, a.now()))
	return exitOK
}

func (a *App) taskEdit(ctx context.Context, args []string) int {
	fs := a.flagSet("edit")
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	due := fs.String("due", "", "new due date (YYYY-MM-DD)")
	clearDue := fs.Bool("clear-due", false, "remove the due date")
	prio := fs.String("priority", "", "low, medium or high")
	status := fs.String("status", "", "pending or completed")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}
	id, ok := a.parseID("edit", fs.Args())
	if !ok {
		return exitUsage
	}

	patch := taskPatch{Due: strings.TrimSpace(*due), Priority: lower(*prio), Status: lower(*status)}
	if err := a.validate.Struct(patch); err != nil {
		a.fail("edit: " + describe(err))
		return exitUsage
	}

	t, found, err := a.Tasks.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("task", id)
	}

	if s := strings.TrimSpace(*title); s != "" {
		t.Title = s
	}
	if fs.Changed("desc") {
		t.Description = strings.TrimSpace(*desc)
	}
	if patch.Due != "" {
		t.DueDate, _ = parseDate(patch.Due)
	}
	if *clearDue {
		t.DueDate = nil
	}
	if patch.Priority != "" {
		t.Priority, _ = model.ParsePriority(patch.Priority)
	}
	if patch.Status != "" {
		t.IsCompleted, _ = model.ParseCompletion(patch.Status)
	}

	return a.taskUpdate(ctx, t, "updated")
}

func (a *App) taskToggle(ctx context.Context, args []string) int {
	id, ok := a.parseID("done", args)
	if !ok {
		return exitUsage
	}
	t, found, err := a.Tasks.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("task", id)
	}
	t.IsCompleted = t.IsCompleted.Toggle()
	return a.taskUpdate(ctx, t, "marked "+t.IsCompleted.String())
}

// taskUpdate writes t back; the record may have vanished since it was read.
func (a *App) taskUpdate(ctx context.Context, t model.Task, msg string) int {
	ok, err := a.Tasks.Update(ctx, t)
	if err != nil {
		return a.storeFailed("save", err)
	}
	if !ok {
		return a.notFound("task", t.ID)
	}
	a.ok(fmt.Sprintf("task %d %s", t.ID, msg))
	return exitOK
}

func (a *App) taskRemove(ctx context.Context, args []string) int {
	fs := a.flagSet("rm")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}
	id, ok := a.parseID("rm", fs.Args())
	if !ok {
		return exitUsage
	}

	t, found, err := a.Tasks.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("task", id)
	}
	if !*yes && !a.confirm("About to delete:\n"+ui.TaskLine(t)) {
		a.ok("cancelled")
		return exitOK
	}

	removed, err := a.Tasks.Delete(ctx, id)
	if err != nil {
		return a.storeFailed("delete", err)
	}
	if !removed {
		return a.notFound("task", id)
	}
	a.ok(fmt.Sprintf("removed task %d", id))
	return exitOK
}

func (a *App) taskSummary(ctx context.Context) int {
	tasks, err := a.Tasks.Load(ctx)
	if err != nil {
		return a.storeFailed("load", err)
	}
	sum := query.SummarizeTasks(tasks)

	th := ui.Current()
	lines := []string{th.Title.Render("Summary"), fmt.Sprintf("total: %d", sum.Total), ""}
	for _, c := range sum.ByPriority {
		lines = append(lines, fmt.Sprintf("%d %s priority", c.N, c.Value))
	}
	lines = append(lines, "")
	for _, c := range sum.ByCompletion {
		lines = append(lines, fmt.Sprintf("%d %s", c.N, c.Value))
	}
	lines = append(lines, "", th.Muted.Render(ui.ProgressBar(sum.Completed(), sum.Total, 28)))
	ui.Panel(a.out, lines)
	return exitOK
}
