package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/query"
	"github.com/idilsaglam/shelf/internal/ui"
)

// RunLibrary dispatches library subcommands and returns an exit code.
func (a *App) RunLibrary(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.LibraryHelp()
		return exitUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		a.LibraryHelp()
		return exitOK
	case "add":
		return a.bookAdd(ctx, rest)
	case "ls", "list", "search":
		return a.bookList(ctx, rest)
	case "show":
		return a.bookShow(ctx, rest)
	case "edit":
		return a.bookEdit(ctx, rest)
	case "read":
		return a.bookToggle(ctx, rest)
	case "rm":
		return a.bookRemove(ctx, rest)
	case "summary":
		return a.bookSummary(ctx)
	case "browse":
		return a.bookBrowse(ctx)
	}

	a.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(a.errOut)
	a.LibraryHelp()
	return exitUsage
}

func (a *App) LibraryHelp() {
	fmt.Fprint(a.out, `library - a book catalog stored in a JSON file

Usage:
  library [--data-dir DIR] [--config FILE] <subcommand> [args]

Subcommands:
  add <title...>     Add a book
                     --author NAME --genre NAME --year YYYY --status read|unread
  ls | search        List books by id; filters combine
                     --genre G --author A --status S --from-year Y --to-year Y
  show <id>          Show one book
  edit <id>          Change fields; omitted flags keep their value
                     --title --author --genre --year --status
  read <id>          Toggle read/unread
  rm <id>            Delete a book (asks for confirmation unless --yes)
  summary            Totals, read/unread counts and the most common genre
  browse             Interactive list

Examples:
  library add "Dune" --author "Frank Herbert" --genre Sci-Fi --year 1965
  library search --genre sci-fi --from-year 1950
  library read 1
`)
}

func (a *App) bookAdd(ctx context.Context, args []string) int {
	fs := a.flagSet("add")
	author := fs.String("author", "", "author")
	genre := fs.String("genre", "", "genre")
	year := fs.Int("year", 0, "publication year")
	status := fs.String("status", "unread", "read or unread")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}

	in := bookInput{
		Title:  strings.TrimSpace(strings.Join(fs.Args(), " ")),
		Author: strings.TrimSpace(*author),
		Genre:  strings.TrimSpace(*genre),
		Year:   *year,
		Status: lower(*status),
	}
	if err := a.validate.Struct(in); err != nil {
		a.fail("add: " + describe(err))
		return exitUsage
	}

	added, err := a.Library.Add(ctx, in.item())
	if err != nil {
		return a.storeFailed("add", err)
	}
	a.ok(fmt.Sprintf("added book %d", added.ID))
	return exitOK
}

func (a *App) bookList(ctx context.Context, args []string) int {
	fs := a.flagSet("ls")
	genre := fs.String("genre", "", "genre (case-insensitive)")
	author := fs.String("author", "", "author (case-insensitive)")
	status := fs.String("status", "", "read or unread")
	fromYear := fs.Int("from-year", 0, "published in or after")
	toYear := fs.Int("to-year", 0, "published in or before")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}

	patch := bookPatch{Status: lower(*status)}
	if err := a.validate.Struct(patch); err != nil {
		a.fail("ls: " + describe(err))
		return exitUsage
	}
	f := query.LibraryFilter{Genre: *genre, Author: *author}
	if patch.Status != "" {
		s, _ := model.ParseReadStatus(patch.Status)
		f.Status = &s
	}
	if fs.Changed("from-year") {
		f.FromYear = fromYear
	}
	if fs.Changed("to-year") {
		f.ToYear = toYear
	}

	items, err := a.Library.Load(ctx)
	if err != nil {
		return a.storeFailed("load", err)
	}
	shown := query.FilterLibrary(items, f)

	lines := []string{
		ui.Header("Books", ui.Current().Accent.Render("Shown"), fmt.Sprintf("%d of %d", len(shown), len(items))),
		"",
	}
	if len(shown) == 0 {
		lines = append(lines, ui.Muted("no books"))
	}
	for _, b := range shown {
		lines = append(lines, ui.BookLine(b))
	}
	ui.Panel(a.out, lines)
	return exitOK
}

func (a *App) bookShow(ctx context.Context, args []string) int {
	id, ok := a.parseID("show", args)
	if !ok {
		return exitUsage
	}
	b, found, err := a.Library.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("book", id)
	}
	ui.Panel(a.out, ui.BookDetail(b, a.now()))
	return exitOK
}

func (a *App) bookEdit(ctx context.Context, args []string) int {
	fs := a.flagSet("edit")
	title := fs.String("title", "", "new title")
	author := fs.String("author", "", "new author")
	genre := fs.String("genre", "", "new genre")
	year := fs.Int("year", 0, "new publication year")
	status := fs.String("status", "", "read or unread")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}
	id, ok := a.parseID("edit", fs.Args())
	if !ok {
		return exitUsage
	}

	patch := bookPatch{Year: *year, Status: lower(*status)}
	if err := a.validate.Struct(patch); err != nil {
		a.fail("edit: " + describe(err))
		return exitUsage
	}

	b, found, err := a.Library.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("book", id)
	}

	if s := strings.TrimSpace(*title); s != "" {
		b.Title = s
	}
	if s := strings.TrimSpace(*author); s != "" {
		b.Author = s
	}
	if s := strings.TrimSpace(*genre); s != "" {
		b.Genre = s
	}
	if patch.Year != 0 {
		b.PublicationYear = patch.Year
	}
	if patch.Status != "" {
		b.IsRead, _ = model.ParseReadStatus(patch.Status)
	}
	return a.bookUpdate(ctx, b, "updated")
}

func (a *App) bookToggle(ctx context.Context, args []string) int {
	id, ok := a.parseID("read", args)
	if !ok {
		return exitUsage
	}
	b, found, err := a.Library.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("book", id)
	}
	b.IsRead = b.IsRead.Toggle()
	return a.bookUpdate(ctx, b, "marked "+b.IsRead.String())
}

func (a *App) bookUpdate(ctx context.Context, b model.LibraryItem, msg string) int {
	ok, err := a.Library.Update(ctx, b)
	if err != nil {
		return a.storeFailed("save", err)
	}
	if !ok {
		return a.notFound("book", b.ID)
	}
	a.ok(fmt.Sprintf("book %d %s", b.ID, msg))
	return exitOK
}

func (a *App) bookRemove(ctx context.Context, args []string) int {
	fs := a.flagSet("rm")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if code, ok := a.parseArgs(fs, args); !ok {
		return code
	}
	id, ok := a.parseID("rm", fs.Args())
	if !ok {
		return exitUsage
	}

	b, found, err := a.Library.Get(ctx, id)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if !found {
		return a.notFound("book", id)
	}
	if !*yes && !a.confirm("About to delete:\n"+ui.BookLine(b)) {
		a.ok("cancelled")
		return exitOK
	}

	removed, err := a.Library.Delete(ctx, id)
	if err != nil {
		return a.storeFailed("delete", err)
	}
	if !removed {
		return a.notFound("book", id)
	}
	a.ok(fmt.Sprintf("removed book %d", id))
	return exitOK
}

func (a *App) bookSummary(ctx context.Context) int {
	items, err := a.Library.Load(ctx)
	if err != nil {
		return a.storeFailed("load", err)
	}
	sum := query.SummarizeLibrary(items)

	lines := []string{ui.Current().Title.Render("Summary"), fmt.Sprintf("total books: %d", sum.Total)}
	for _, c := range sum.ByStatus {
		lines = append(lines, fmt.Sprintf("%d %s", c.N, c.Value))
	}
	if sum.HasGenre {
		lines = append(lines, fmt.Sprintf("most common genre: %s (%d)", sum.TopGenre, sum.TopGenreN))
	} else {
		lines = append(lines, ui.Muted("most common genre: (none)"))
	}
	ui.Panel(a.out, lines)
	return exitOK
}
