// Command taskdeck is a terminal client for the task-execution service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/taskdeck/internal/api"
	"github.com/xiaorui77/taskdeck/internal/config"
	"github.com/xiaorui77/taskdeck/internal/storage"
	"github.com/xiaorui77/taskdeck/internal/utils/logs"
	"github.com/xiaorui77/taskdeck/internal/utils/wait"
	"github.com/xiaorui77/taskdeck/internal/view"
	"github.com/xiaorui77/taskdeck/internal/view/model"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv(config.EnvConfigFile), "config file (or $"+config.EnvConfigFile+")")
		apiURL     = flag.String("api", "", "task service URL (overrides config)")
		logLevel   = flag.String("log-level", "", "log level (overrides config)")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}

	args := flag.Args()
	cmd := "tui"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	if cmd == "version" {
		cmdVersion()
		return
	}
	if cmd == "tui" {
		if *logLevel != "" {
			cfg.Log.Level = *logLevel
		}
		if err := runTUI(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// one-shot commands log to stderr, quiet unless asked
	level := "warn"
	if *logLevel != "" {
		level = *logLevel
	}
	if err := logs.Init(level, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app, err := newApp(wait.SetupStopSignal(context.Background()), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	switch cmd {
	case "list":
		err = app.cmdList(args)
	case "show":
		err = app.cmdShow(args)
	case "find":
		err = app.cmdFind(args)
	case "create":
		err = app.cmdCreate(args)
	case "exec":
		err = app.cmdExec(args)
	case "delete":
		err = app.cmdDelete(args, os.Stdin)
	case "journal":
		err = app.cmdJournal(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		app.Close()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		app.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, usageText)
}

const usageText = `taskdeck - task manager client

Usage:
  taskdeck [flags] [command] [args]

Flags:
  -config     <path>   config file (or $TASKDECK_CONFIG)
  -api        <url>    task service URL (or $TASKDECK_API)
  -log-level  <level>  debug, info, warn, error

Commands:
  tui                                   interactive task manager (default)
  list [-search text]                   list tasks
  show <id>                             show a task and its runs
  find <name>                           find tasks whose name contains <name>
  create -name n -owner o -command c    create a task
  exec <id>                             execute a task and wait for it
  delete [-yes] <id>                    delete a task
  journal [-limit n]                    show recent actions
  version                               print version
`

func runTUI(cfg *config.Config) error {
	f, err := logs.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := model.NewLogsBuffer()
	if err := logs.Init(cfg.Log.Level, io.MultiWriter(f, buf)); err != nil {
		return err
	}

	ui := view.NewUI(cfg, buf)
	ctx, cancel := context.WithCancel(wait.SetupStopSignal(context.Background()))
	defer cancel()
	app, err := newApp(ctx, cfg, model.WithNotifier(ui.Notifier()))
	if err != nil {
		return err
	}
	defer app.Close()

	ui.Init(app.table)
	logrus.WithField(logs.FieldCatalog, "main").Infof("[main] taskdeck started against %s", cfg.API.BaseURL)
	err = ui.Run(ctx)
	// abandon requests still running, e.g. a long execution
	cancel()
	app.table.Wait()
	return err
}

// App is everything a command needs, wired from the config.
type App struct {
	cfg     *config.Config
	client  api.Lookup
	store   storage.Store
	journal storage.Journal
	table   *model.Table
	notify  *cliNotifier
	ctx     context.Context

	closed bool
}

func newApp(ctx context.Context, cfg *config.Config, opts ...model.Option) (*App, error) {
	client, err := api.NewClient(cfg.API.BaseURL)
	if err != nil {
		return nil, err
	}
	app := &App{
		cfg:     cfg,
		client:  client,
		store:   storage.NewStore(cfg.Seen.Persistent, cfg.Seen.RedisAddr),
		journal: storage.OpenJournal(cfg.Journal.DSN),
		notify:  &cliNotifier{out: os.Stdout, errOut: os.Stderr},
		ctx:     ctx,
	}
	opts = append([]model.Option{
		model.WithContext(ctx),
		model.WithNotifier(app.notify),
		model.WithStore(app.store),
		model.WithJournal(app.journal),
		model.WithTimeLayout(cfg.UI.TimeFormat),
	}, opts...)
	app.table = model.NewTable(client, opts...)
	return app, nil
}

func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if err := a.store.Close(); err != nil {
		logrus.Warnf("[main] close seen store: %v", err)
	}
	if err := a.journal.Close(); err != nil {
		logrus.Warnf("[main] close journal: %v", err)
	}
}
