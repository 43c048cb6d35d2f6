package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/idilsaglam/shelf/internal/cli"
	"github.com/idilsaglam/shelf/internal/config"
	"github.com/idilsaglam/shelf/internal/logger"
	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/store/jsonstore"
	"github.com/idilsaglam/shelf/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
	log := logger.New(*cfg, os.Stderr)
	ui.SetTheme(cfg.Theme)

	tasks := jsonstore.New[model.Task](cfg.TasksPath(), jsonstore.WithLogger(log))
	app := cli.New(tasks, nil)

	// Hand the remaining args to the CLI runner.
	code := app.RunTasks(context.Background(), fs.Args())
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
