package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/xiaorui77/taskdeck/internal/config"
	"github.com/xiaorui77/taskdeck/internal/version"
	"github.com/xiaorui77/taskdeck/internal/view/model"
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

// cliNotifier prints view-model notifications and remembers the errors.
type cliNotifier struct {
	out    io.Writer
	errOut io.Writer

	mu   sync.Mutex
	errs []string
}

func (n *cliNotifier) Success(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *cliNotifier) Error(msg string) {
	n.mu.Lock()
	n.errs = append(n.errs, msg)
	n.mu.Unlock()
	fmt.Fprintln(n.errOut, msg)
}

// Failed reports whether msg was notified since the last Err.
func (n *cliNotifier) Failed(msg string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.errs {
		if e == msg {
			return true
		}
	}
	return false
}

// Err returns the last error notified since the previous call.
func (n *cliNotifier) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errs) == 0 {
		return nil
	}
	err := errors.New(strings.TrimSuffix(n.errs[len(n.errs)-1], "!"))
	n.errs = nil
	return err
}

// --- version ---

func cmdVersion() {
	fmt.Printf("taskdeck %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.BuildDate)
}

// load fetches the task list into the table and waits for it.
func (a *App) load(ctx context.Context) error {
	if err := a.table.Watch(ctx); err != nil {
		return err
	}
	a.table.Wait()
	return a.notify.Err()
}

// --- list ---

func (a *App) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "only tasks whose name contains text")
	_ = fs.Parse(args)

	if err := a.load(a.ctx); err != nil {
		return err
	}
	a.table.Search(*search)
	snap := a.table.Snapshot()
	rows := make([]pmodel.TaskRow, 0, len(snap.Rows))
	for _, r := range snap.Rows {
		rows = append(rows, r.TaskRow)
	}
	printRows(os.Stdout, rows, snap.EmptyText())
	return nil
}

// --- show / find ---

func (a *App) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck show <id>")
	}
	task, err := a.client.GetTask(a.ctx, args[0])
	if err != nil {
		return err
	}
	printTask(os.Stdout, task, a.cfg.UI.TimeFormat)
	return nil
}

func (a *App) cmdFind(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck find <name>")
	}
	tasks, err := a.client.FindTasks(a.ctx, args[0])
	if err != nil {
		return err
	}
	pmodel.SortByIDDesc(tasks)
	rows := make([]pmodel.TaskRow, 0, len(tasks))
	for i := range tasks {
		rows = append(rows, pmodel.NewTaskRow(&tasks[i], a.cfg.UI.TimeFormat))
	}
	printRows(os.Stdout, rows, model.EmptyNoTasks)
	return nil
}

// --- create ---

func (a *App) cmdCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "task name")
	owner := fs.String("owner", "", "task owner")
	command := fs.String("command", "", "shell command")
	_ = fs.Parse(args)

	a.table.OpenCreate()
	a.table.SetField(model.FieldName, *name)
	a.table.SetField(model.FieldOwner, *owner)
	a.table.SetField(model.FieldCommand, *command)
	if err := a.table.SubmitCreate(); err != nil {
		return err
	}
	a.table.Wait()
	// a failed refetch is already printed, the task exists anyway
	failed := a.notify.Failed(model.MsgCreateFailed)
	err := a.notify.Err()
	if failed {
		return err
	}
	return nil
}

// --- exec ---

func (a *App) cmdExec(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck exec <id>")
	}
	id := args[0]
	if err := a.load(a.ctx); err != nil {
		return err
	}
	if _, ok := a.table.Task(id); !ok {
		return fmt.Errorf("task %s not found", id)
	}

	a.table.Execute(id)
	a.table.Wait()
	if err := a.notify.Err(); err != nil {
		return err
	}
	if task, ok := a.table.Task(id); ok {
		latest := task.Latest()
		fmt.Printf("started:  %s\n", pmodel.FormatStart(latest, a.cfg.UI.TimeFormat))
		fmt.Printf("output:\n%s\n", pmodel.DisplayOutput(latest))
	}
	return nil
}

// --- delete ---

func (a *App) cmdDelete(args []string, in io.Reader) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskdeck delete [-yes] <id>")
	}
	id := fs.Arg(0)

	if err := a.load(a.ctx); err != nil {
		return err
	}
	if !a.table.RequestDelete(id) {
		return fmt.Errorf("task %s not found", id)
	}

	confirmed := *yes
	if !confirmed {
		prompt := a.table.Snapshot().Delete
		fmt.Printf("Delete task %q (%s)? [y/N] ", prompt.Name, prompt.ID)
		confirmed = readYes(in)
	}
	a.table.ConfirmDelete(confirmed)
	a.table.Wait()
	if !confirmed {
		fmt.Println("cancelled")
		return nil
	}
	return a.notify.Err()
}

func readYes(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// --- journal ---

func (a *App) cmdJournal(args []string) error {
	fs := flag.NewFlagSet("journal", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of entries")
	_ = fs.Parse(args)

	if a.cfg.Journal.DSN == "" {
		return fmt.Errorf("journal is disabled, set journal.dsn or $%s", config.EnvJournalDSN)
	}
	entries, err := a.table.RecentActions(a.ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no actions recorded")
		return nil
	}
	fmt.Printf("%-20s %-8s %-24s %-7s %-5s %s\n", "TIME", "ACTION", "TASK", "RESULT", "CODE", "MESSAGE")
	fmt.Println(strings.Repeat("-", 90))
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = "failed"
		}
		task := e.TaskName
		if task == "" {
			task = e.TaskID
		}
		fmt.Printf("%-20s %-8s %-24s %-7s %-5d %s\n",
			pmodel.FormatTime(e.CreatedAt, a.cfg.UI.TimeFormat),
			e.Op,
			truncate(task, 23),
			result,
			e.Code,
			truncate(pmodel.OneLine(e.Message), 60),
		)
	}
	return nil
}
