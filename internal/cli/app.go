// Package cli is the console front end for the task list and the library
// catalog. It owns flag parsing, input validation and rendering; every
// read and write goes through a jsonstore.Repository.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/store/jsonstore"
	"github.com/idilsaglam/shelf/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

const dateLayout = "2006-01-02"

// confirmWord must be typed to confirm a delete.
const confirmWord = "DELETE"

// App wires the repositories to the terminal.
type App struct {
	Tasks   *jsonstore.Repository[model.Task]
	Library *jsonstore.Repository[model.LibraryItem]

	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	now      func() time.Time
	validate *validator.Validate

	// runBrowser starts the interactive list; replaced in tests.
	runBrowser func(m browserModel) error
}

// Option configures an App.
type Option func(*App)

// WithIO redirects the streams the App reads from and writes to.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
		a.errOut = errOut
	}
}

// WithClock overrides the time used for validation and relative dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New returns an App. Either repository may be nil when the command does
// not use it.
func New(tasks *jsonstore.Repository[model.Task], library *jsonstore.Repository[model.LibraryItem], opts ...Option) *App {
	a := &App{
		Tasks:      tasks,
		Library:    library,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		errOut:     os.Stderr,
		now:        time.Now,
		runBrowser: runProgram,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.validate = newValidator(a.now)
	return a
}

func (a *App) ok(msg string)   { ui.OK(a.out, msg) }
func (a *App) fail(msg string) { ui.Fail(a.errOut, msg) }

// storeFailed reports a storage error. A corrupt file gets a hint because
// the store refuses to write until it is repaired.
func (a *App) storeFailed(op string, err error) int {
	a.fail(op + ": " + err.Error())
	if errors.Is(err, jsonstore.ErrCorrupt) {
		fmt.Fprintln(a.errOut, ui.Muted("Hint: fix or move the data file; it will not be overwritten"))
	}
	return exitErr
}

func (a *App) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseArgs parses subcommand flags and reports a usage exit code on
// failure.
func (a *App) parseArgs(fs *pflag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

func (a *App) parseID(cmd string, args []string) (int, bool) {
	if len(args) != 1 {
		a.fail(fmt.Sprintf("usage: %s <id>", cmd))
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		a.fail(cmd + ": not a valid id: " + args[0])
		return 0, false
	}
	return n, true
}

// confirm asks the user to type confirmWord.
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s\nType %s to confirm: ", prompt, confirmWord)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line) == confirmWord
}

func (a *App) notFound(kind string, id int) int {
	a.fail(fmt.Sprintf("%s %d not found", kind, id))
	return exitErr
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &d, nil
}
