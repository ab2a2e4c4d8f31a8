package main

import (
	"fmt"
	"io"
	"strings"

	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

func printRows(w io.Writer, rows []pmodel.TaskRow, empty string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	fmt.Fprintf(w, "%-24s %-20s %-12s %-30s %-19s %s\n", "ID", "NAME", "OWNER", "COMMAND", "LAST RUN START", "LAST OUTPUT")
	fmt.Fprintln(w, strings.Repeat("-", 130))
	for _, r := range rows {
		fmt.Fprintf(w, "%-24s %-20s %-12s %-30s %-19s %s\n",
			truncate(r.ID, 24),
			truncate(r.Name, 19),
			truncate(r.Owner, 11),
			truncate(pmodel.OneLine(r.Command), 29),
			r.LastRunStart,
			truncate(pmodel.OneLine(r.LastOutput), 40),
		)
	}
}

func printTask(w io.Writer, t *pmodel.Task, layout string) {
	fmt.Fprintf(w, "id:      %s\n", t.ID)
	fmt.Fprintf(w, "name:    %s\n", t.Name)
	fmt.Fprintf(w, "owner:   %s\n", t.Owner)
	fmt.Fprintf(w, "command: %s\n", t.Command)
	fmt.Fprintf(w, "runs:    %d\n", len(t.TaskExecutions))
	for i := range t.TaskExecutions {
		e := &t.TaskExecutions[i]
		fmt.Fprintf(w, "\n#%d  started %s", i+1, pmodel.FormatStart(e, layout))
		if d, ok := e.Duration(); ok {
			fmt.Fprintf(w, ", took %s", d)
		}
		fmt.Fprintf(w, "\n%s\n", pmodel.DisplayOutput(e))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
