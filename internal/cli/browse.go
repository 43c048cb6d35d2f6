package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/query"
	"github.com/idilsaglam/shelf/internal/store/jsonstore"
	"github.com/idilsaglam/shelf/internal/ui"
)

// entry adapts a record to bubbles/list.Item.
type entry struct {
	id     int
	text   string
	detail string
	done   bool
}

func (e entry) FilterValue() string { return e.text }

// source is what the browser needs from a repository.
type source interface {
	load(ctx context.Context) ([]entry, error)
	toggle(ctx context.Context, id int) (entry, error)
	remove(ctx context.Context, id int) error
	add(ctx context.Context, line string) (entry, error)
	retitle(ctx context.Context, id int, title string) (entry, error)
	addHint() string
}

// repoSource implements source for any record type.
type repoSource[T model.Record[T]] struct {
	repo   *jsonstore.Repository[T]
	list   func([]T) []T
	entry  func(T) entry
	flip   func(T) T
	rename func(T, string) T
	create func(line string) (T, error)
	hint   string
}

func (s repoSource[T]) load(ctx context.Context) ([]entry, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	items = s.list(items)
	out := make([]entry, 0, len(items))
	for _, it := range items {
		out = append(out, s.entry(it))
	}
	return out, nil
}

func (s repoSource[T]) modify(ctx context.Context, id int, fn func(T) T) (entry, error) {
	rec, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return entry{}, err
	}
	if !found {
		return entry{}, fmt.Errorf("record %d no longer exists", id)
	}
	rec = fn(rec)
	ok, err := s.repo.Update(ctx, rec)
	if err != nil {
		return entry{}, err
	}
	if !ok {
		return entry{}, fmt.Errorf("record %d no longer exists", id)
	}
	return s.entry(rec), nil
}

func (s repoSource[T]) toggle(ctx context.Context, id int) (entry, error) {
	return s.modify(ctx, id, s.flip)
}

func (s repoSource[T]) retitle(ctx context.Context, id int, title string) (entry, error) {
	return s.modify(ctx, id, func(rec T) T { return s.rename(rec, title) })
}

func (s repoSource[T]) remove(ctx context.Context, id int) error {
	_, err := s.repo.Delete(ctx, id)
	return err
}

func (s repoSource[T]) add(ctx context.Context, line string) (entry, error) {
	rec, err := s.create(line)
	if err != nil {
		return entry{}, err
	}
	rec, err = s.repo.Add(ctx, rec)
	if err != nil {
		return entry{}, err
	}
	return s.entry(rec), nil
}

func (s repoSource[T]) addHint() string { return s.hint }

func taskSource(repo *jsonstore.Repository[model.Task]) source {
	return repoSource[model.Task]{
		repo: repo,
		list: query.SortTasks,
		entry: func(t model.Task) entry {
			return entry{id: t.ID, text: t.Title, done: t.Done(),
				detail: fmt.Sprintf("%s · due %s", t.Priority, ui.Due(t.DueDate))}
		},
		flip:   func(t model.Task) model.Task { t.IsCompleted = t.IsCompleted.Toggle(); return t },
		rename: func(t model.Task, s string) model.Task { t.Title = s; return t },
		create: func(title string) (model.Task, error) {
			return model.Task{Title: title, Priority: model.PriorityMedium, IsCompleted: model.Pending}, nil
		},
		hint: "New title...",
	}
}

func bookSource(repo *jsonstore.Repository[model.LibraryItem], v *validator.Validate) source {
	return repoSource[model.LibraryItem]{
		repo: repo,
		list: query.SortLibrary,
		entry: func(b model.LibraryItem) entry {
			return entry{id: b.ID, text: b.Title, done: b.IsRead == model.Read,
				detail: fmt.Sprintf("%s · %s · %d", b.Author, b.Genre, b.PublicationYear)}
		},
		flip:   func(b model.LibraryItem) model.LibraryItem { b.IsRead = b.IsRead.Toggle(); return b },
		rename: func(b model.LibraryItem, s string) model.LibraryItem { b.Title = s; return b },
		create: func(line string) (model.LibraryItem, error) { return bookFromLine(v, line) },
		hint:   "Title; Author; Genre; Year",
	}
}

// bookFromLine parses "title; author; genre; year" and applies the same
// rules as `library add`.
func bookFromLine(v *validator.Validate, line string) (model.LibraryItem, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 4 {
		return model.LibraryItem{}, errors.New("enter: title; author; genre; year")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return model.LibraryItem{}, fmt.Errorf("year must be a number, got %q", parts[3])
	}
	in := bookInput{Title: parts[0], Author: parts[1], Genre: parts[2], Year: year, Status: "unread"}
	if err := v.Struct(in); err != nil {
		return model.LibraryItem{}, errors.New(describe(err))
	}
	return in.item(), nil
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, _ := item.(entry)
	th := ui.Current()

	box := th.Muted.Render(th.BoxUnchecked)
	text := e.text
	if e.done {
		box = th.Success.Render(th.BoxChecked)
		text = th.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, text, th.Muted.Render(e.detail))
}

type browserModel struct {
	ctx  context.Context
	src  source
	name string

	list   list.Model
	width  int
	height int

	// inline add/edit share one text input
	ti      textinput.Model
	adding  bool
	editing bool
	editID  int

	// id armed by a first "d"; a second "d" on it deletes
	confirmID int

	status string // last error or confirmation
}

func newBrowser(ctx context.Context, name string, src source, entries []entry) browserModel {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e)
	}

	th := ui.Current()
	l := list.New(items, itemDelegate{}, 0, 0)
	l.Title = name
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = th.Title
	l.Styles.HelpStyle = th.Muted
	l.Styles.PaginationStyle = th.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d d", "delete"))
	extra := func() []key.Binding { return []key.Binding{toggleBind, addBind, editBind, delBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return browserModel{ctx: ctx, src: src, name: name, list: l, ti: ti, width: 80, height: 24}
}

func runProgram(m browserModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *App) taskBrowse(ctx context.Context) int {
	return a.browse(ctx, "Tasks", taskSource(a.Tasks))
}

func (a *App) bookBrowse(ctx context.Context) int {
	return a.browse(ctx, "Books", bookSource(a.Library, a.validate))
}

func (a *App) browse(ctx context.Context, name string, src source) int {
	entries, err := src.load(ctx)
	if err != nil {
		return a.storeFailed("load", err)
	}
	if err := a.runBrowser(newBrowser(ctx, name, src, entries)); err != nil {
		a.fail("tui: " + err.Error())
		return exitErr
	}
	return exitOK
}

func (m browserModel) Init() tea.Cmd { return nil }

// selected returns the highlighted entry and its index in the unfiltered
// item slice, which is what SetItem and RemoveItem expect.
func (m browserModel) selected() (entry, int, bool) {
	i := m.list.GlobalIndex()
	e, ok := m.list.SelectedItem().(entry)
	return e, i, ok
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if km.String() != "d" && m.confirmID != 0 {
		m.confirmID = 0
		m.status = ""
	}

	switch km.String() {
	case "q", "esc":
		return m, tea.Quit
	case " ":
		if e, i, ok := m.selected(); ok {
			updated, err := m.src.toggle(m.ctx, e.id)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = ""
			return m, m.list.SetItem(i, updated)
		}
		return m, nil
	case "d":
		if e, i, ok := m.selected(); ok {
			if m.confirmID != e.id {
				m.confirmID = e.id
				m.status = fmt.Sprintf("press d again to delete %d", e.id)
				return m, nil
			}
			m.confirmID = 0
			if err := m.src.remove(m.ctx, e.id); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.list.RemoveItem(i)
			m.status = fmt.Sprintf("deleted %d", e.id)
		}
		return m, nil
	case "a":
		m.adding = true
		m.ti.SetValue("")
		m.ti.Placeholder = m.src.addHint()
		m.ti.Focus()
		return m, nil
	case "e":
		if e, _, ok := m.selected(); ok {
			m.editing = true
			m.editID = e.id
			m.ti.SetValue(e.text)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit title..."
			m.ti.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.status = "Title cannot be empty"
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				e, err := m.src.add(m.ctx, title)
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				cmd = m.list.InsertItem(len(m.list.Items()), e)
				m.status = fmt.Sprintf("added %d", e.id)
			} else {
				e, err := m.src.retitle(m.ctx, m.editID, title)
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				if _, i, ok := m.selected(); ok {
					cmd = m.list.SetItem(i, e)
				}
				m.status = ""
			}
			m.closeInput()
			return m, cmd
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *browserModel) closeInput() {
	m.adding, m.editing = false, false
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m browserModel) View() string {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-4, listHeight)

	th := ui.Current()
	content := m.list.View()
	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		bar := lipgloss.NewStyle().Border(th.Border).BorderForeground(th.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	if m.status != "" {
		content += "\n" + th.Error.Render(m.status)
	}
	return ui.PanelString([]string{content})
}
