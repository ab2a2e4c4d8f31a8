package model

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/taskdeck/internal/api"
	"github.com/xiaorui77/taskdeck/internal/storage"
	error2 "github.com/xiaorui77/taskdeck/pkg/error"
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

var log = logrus.WithField("catalog", "table")

// Table is the task list screen state and its operations. Every operation
// returns at once; the request runs on its own goroutine and listeners are
// called after each state change.
type Table struct {
	api     api.TaskAPI
	notify  Notifier
	store   storage.Store
	journal storage.Journal
	layout  string
	ctx     context.Context

	mu          sync.RWMutex
	tasks       []pmodel.Task
	filtered    []pmodel.Task
	unseen      map[string]bool
	searchText  string
	loading     bool
	submitting  bool
	executingID string
	modalOpen   bool
	form        Form
	deleting    *DeletePrompt
	sort        Sort
	// fetchSeq numbers list requests; only the newest may replace tasks.
	fetchSeq uint64

	lmx       sync.Mutex
	listeners []func()

	inflight sync.WaitGroup
}

type Option func(t *Table)

func WithNotifier(n Notifier) Option {
	return func(t *Table) {
		t.notify = n
	}
}

func WithStore(s storage.Store) Option {
	return func(t *Table) {
		t.store = s
	}
}

func WithJournal(j storage.Journal) Option {
	return func(t *Table) {
		t.journal = j
	}
}

func WithTimeLayout(layout string) Option {
	return func(t *Table) {
		t.layout = layout
	}
}

// WithContext sets the context requests run under until Watch replaces it.
func WithContext(ctx context.Context) Option {
	return func(t *Table) {
		t.ctx = ctx
	}
}

func NewTable(client api.TaskAPI, opts ...Option) *Table {
	t := &Table{
		api:     client,
		notify:  nopNotifier{},
		journal: storage.NopJournal{},
		layout:  pmodel.DefaultTimeLayout,
		ctx:     context.Background(),
		unseen:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Watch binds the table to ctx and performs the initial load. A ctx that
// is already done is returned as the error and nothing is loaded.
func (t *Table) Watch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	t.ctx = ctx
	t.mu.Unlock()
	t.Load()
	return nil
}

func (t *Table) AddListener(fn func()) {
	t.lmx.Lock()
	defer t.lmx.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Wait blocks until every request started so far, and the refetches they
// triggered, have finished.
func (t *Table) Wait() {
	t.inflight.Wait()
}

// Load refetches the whole list.
func (t *Table) Load() {
	t.mu.Lock()
	t.loading = true
	t.fetchSeq++
	seq := t.fetchSeq
	ctx := t.ctx
	t.mu.Unlock()
	t.changed()

	t.async(func() {
		tasks, err := t.api.ListTasks(ctx)
		var unseen map[string]bool
		if err == nil {
			pmodel.SortByIDDesc(tasks)
			unseen = t.unseenRuns(tasks)
		}

		t.mu.Lock()
		stale := seq != t.fetchSeq
		if !stale {
			t.loading = false
			if err == nil {
				t.tasks = tasks
				t.filtered = pmodel.FilterByName(tasks, t.searchText)
				t.unseen = unseen
			}
		}
		t.mu.Unlock()

		if err != nil {
			log.Errorf("fetch tasks failed: %v", err)
			t.notify.Error(MsgFetchFailed)
		} else if stale {
			log.Debugf("drop stale task list #%d", seq)
		} else {
			log.Debugf("task list #%d loaded, %d tasks", seq, len(tasks))
		}
		t.changed()
	})
}

// Search filters the loaded list by name. No request is made.
func (t *Table) Search(text string) {
	t.mu.Lock()
	t.searchText = text
	t.filtered = pmodel.FilterByName(t.tasks, text)
	t.mu.Unlock()
	t.changed()
}

// SortBy advances the sort of col; false when col is not sortable.
func (t *Table) SortBy(col Column) bool {
	if !col.Sortable() {
		return false
	}
	t.mu.Lock()
	t.sort = t.sort.next(col)
	t.mu.Unlock()
	t.changed()
	return true
}

func (t *Table) OpenCreate() {
	t.mu.Lock()
	t.modalOpen = true
	t.mu.Unlock()
	t.changed()
}

// CloseCreate hides the form; its content is kept for the next open.
func (t *Table) CloseCreate() {
	t.mu.Lock()
	t.modalOpen = false
	t.mu.Unlock()
	t.changed()
}

func (t *Table) SetField(field Field, value string) {
	t.mu.Lock()
	t.form.Set(field, value)
	t.mu.Unlock()
}

// SubmitCreate sends the form. Blank required fields return a *FormError
// and nothing is sent.
func (t *Table) SubmitCreate() error {
	t.mu.Lock()
	form := t.form
	if missing := form.Missing(); len(missing) > 0 {
		t.mu.Unlock()
		return &FormError{Missing: missing}
	}
	t.submitting = true
	ctx := t.ctx
	t.mu.Unlock()
	t.changed()

	t.async(func() {
		created, err := t.api.CreateTask(ctx, form.Name, form.Owner, form.Command)
		id := ""
		if created != nil {
			id = created.ID
		}
		t.record(ctx, api.OpCreate, id, form.Name, err)

		t.mu.Lock()
		t.submitting = false
		if err == nil {
			t.modalOpen = false
			t.form = Form{}
			t.searchText = ""
			t.filtered = pmodel.FilterByName(t.tasks, "")
		}
		t.mu.Unlock()

		if err != nil {
			log.Errorf("create task %q failed: %v", form.Name, err)
			t.notify.Error(MsgCreateFailed)
			t.changed()
			return
		}
		log.WithField("taskId", id).Infof("task %q created", form.Name)
		t.notify.Success(MsgCreated)
		t.changed()
		t.Load()
	})
	return nil
}

// RequestDelete opens the confirmation prompt for id.
func (t *Table) RequestDelete(id string) bool {
	t.mu.Lock()
	task, ok := t.find(id)
	if ok {
		t.deleting = &DeletePrompt{ID: task.ID, Name: task.Name}
	}
	t.mu.Unlock()
	if ok {
		t.changed()
	}
	return ok
}

// ConfirmDelete answers the open prompt. Only a yes sends the request.
func (t *Table) ConfirmDelete(yes bool) {
	t.mu.Lock()
	prompt := t.deleting
	t.deleting = nil
	ctx := t.ctx
	t.mu.Unlock()
	t.changed()
	if prompt == nil || !yes {
		return
	}

	t.async(func() {
		err := t.api.DeleteTask(ctx, prompt.ID)
		t.record(ctx, api.OpDelete, prompt.ID, prompt.Name, err)
		if err != nil {
			log.WithField("taskId", prompt.ID).Errorf("delete failed: %v", err)
			t.notify.Error(MsgDeleteFailed)
			return
		}
		if t.store != nil {
			t.store.Forget(prompt.ID)
		}
		log.WithField("taskId", prompt.ID).Infof("task %q deleted", prompt.Name)
		t.notify.Success(MsgDeleted)
		t.Load()
	})
}

// Execute runs the task's command on the server and marks the row busy
// until the call returns.
func (t *Table) Execute(id string) {
	t.mu.Lock()
	t.executingID = id
	name := ""
	if task, ok := t.find(id); ok {
		name = task.Name
	}
	ctx := t.ctx
	t.mu.Unlock()
	t.changed()

	t.async(func() {
		_, err := t.api.ExecuteTask(ctx, id)
		t.record(ctx, api.OpExecute, id, name, err)

		t.mu.Lock()
		// a later Execute owns the indicator now
		if t.executingID == id {
			t.executingID = ""
		}
		t.mu.Unlock()

		if err != nil {
			log.WithField("taskId", id).Errorf("execute failed: %v", err)
			t.notify.Error(MsgExecuteFailed)
			t.changed()
			return
		}
		log.WithField("taskId", id).Infof("execution of %q completed", name)
		t.notify.Success(MsgExecuted)
		t.changed()
		t.Load()
	})
}

// MarkSeen records that the user opened the latest run of id.
func (t *Table) MarkSeen(id string) {
	t.mu.Lock()
	task, ok := t.find(id)
	var latest *pmodel.TaskExecution
	if ok {
		latest = task.Latest()
		delete(t.unseen, id)
	}
	t.mu.Unlock()
	if !ok {
		return
	}
	if latest != nil && t.store != nil {
		t.store.Visit(id, latest.RunKey())
	}
	t.changed()
}

// Task returns a copy of the loaded task with the given id.
func (t *Table) Task(id string) (pmodel.Task, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	task, ok := t.find(id)
	if !ok {
		return pmodel.Task{}, false
	}
	return *task, true
}

// Tasks is the full list from the last successful fetch.
func (t *Table) Tasks() []pmodel.Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]pmodel.Task(nil), t.tasks...)
}

// FilteredTasks is Tasks narrowed by the search text, in fetch order.
func (t *Table) FilteredTasks() []pmodel.Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]pmodel.Task(nil), t.filtered...)
}

func (t *Table) RecentActions(ctx context.Context, limit int) ([]storage.Entry, error) {
	return t.journal.Recent(ctx, limit)
}

func (t *Table) TimeLayout() string {
	return t.layout
}

// find must be called with mu held.
func (t *Table) find(id string) (*pmodel.Task, bool) {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return &t.tasks[i], true
		}
	}
	return nil, false
}

func (t *Table) unseenRuns(tasks []pmodel.Task) map[string]bool {
	unseen := map[string]bool{}
	if t.store == nil {
		return unseen
	}
	for i := range tasks {
		if latest := tasks[i].Latest(); latest != nil && !t.store.IsVisited(tasks[i].ID, latest.RunKey()) {
			unseen[tasks[i].ID] = true
		}
	}
	return unseen
}

func (t *Table) record(ctx context.Context, op, id, name string, err error) {
	e := &storage.Entry{Op: op, TaskID: id, TaskName: name, Success: err == nil}
	if err != nil {
		e.Code = error2.CodeOf(err)
		e.Message = err.Error()
	}
	if jerr := t.journal.Record(ctx, e); jerr != nil {
		log.WithField("taskId", id).Warnf("journal %s failed: %v", op, jerr)
	}
}

func (t *Table) async(fn func()) {
	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		fn()
	}()
}

func (t *Table) changed() {
	t.lmx.Lock()
	ls := append([]func(){}, t.listeners...)
	t.lmx.Unlock()
	for _, fn := range ls {
		fn()
	}
}
