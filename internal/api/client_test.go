package api

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	error2 "github.com/xiaorui77/taskdeck/pkg/error"
	"github.com/xiaorui77/taskdeck/pkg/model"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

// newTestServer answers every request with status and body and records
// the last request it saw.
func newTestServer(t *testing.T, status int, body string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bs, _ := ioutil.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.query = r.URL.RawQuery
		rec.body = string(bs)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, rec
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://host", "http://"} {
		if _, err := NewClient(raw); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", raw)
		}
	}
}

func TestListTasks(t *testing.T) {
	c, rec := newTestServer(t, 200, `[{"id":"1","name":"a","owner":"o","command":"ls"},{"id":"2","name":"b","owner":"o","command":"pwd","taskExecutions":[{"startTime":"2024-01-01T00:00:00Z","output":"/"}]}]`)

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/tasks" {
		t.Errorf("request = %s %s, want GET /tasks", rec.method, rec.path)
	}
	if len(tasks) != 2 || tasks[1].Latest() == nil {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestCreateTask(t *testing.T) {
	c, rec := newTestServer(t, 200, `{"id":"42","name":"backup","owner":"alice","command":"tar czf x.tgz /data"}`)

	created, err := c.CreateTask(context.Background(), "backup", "alice", "tar czf x.tgz /data")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/tasks" {
		t.Errorf("request = %s %s, want PUT /tasks", rec.method, rec.path)
	}
	var sent model.CreateTaskRequest
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil {
		t.Fatalf("body %q: %v", rec.body, err)
	}
	if sent.Name != "backup" || sent.Owner != "alice" || sent.Command != "tar czf x.tgz /data" {
		t.Errorf("sent = %+v", sent)
	}
	if created.ID != "42" || len(created.TaskExecutions) != 0 {
		t.Errorf("created = %+v", created)
	}
}

func TestDeleteTask(t *testing.T) {
	c, rec := newTestServer(t, 200, ``)

	if err := c.DeleteTask(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/tasks/a%2Fb" {
		t.Errorf("request = %s %s, want DELETE /tasks/a%%2Fb", rec.method, rec.path)
	}
}

func TestExecuteTask(t *testing.T) {
	c, rec := newTestServer(t, 200, `{"id":"42","name":"n","owner":"o","command":"echo","taskExecutions":[{"startTime":"2024-01-01T00:00:00Z","endTime":"2024-01-01T00:00:01Z","output":""}]}`)

	updated, err := c.ExecuteTask(context.Background(), "42")
	if err != nil {
		t.Fatalf("ExecuteTask: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/tasks/42/execute" {
		t.Errorf("request = %s %s, want PUT /tasks/42/execute", rec.method, rec.path)
	}
	if got := model.DisplayOutput(updated.Latest()); got != model.NoOutput {
		t.Errorf("latest output = %q, want %q", got, model.NoOutput)
	}
}

func TestErrorStatus(t *testing.T) {
	c, _ := newTestServer(t, 404, `{"status":404,"error":"Not Found","path":"/tasks/9"}`)

	err := c.DeleteTask(context.Background(), "9")
	if err == nil {
		t.Fatal("DeleteTask succeeded on 404")
	}
	if code := error2.CodeOf(err); code != 404 {
		t.Errorf("code = %d, want 404", code)
	}
	e, ok := err.(*error2.Err)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if e.Op != OpDelete || e.Detail == "" {
		t.Errorf("err = %+v", e)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	srv.Close()

	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("ListTasks succeeded against a closed server")
	} else if code := error2.CodeOf(err); code != 0 {
		t.Errorf("code = %d, want 0 for transport failure", code)
	}
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestServer(t, 200, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ListTasks(ctx); err == nil {
		t.Error("ListTasks succeeded with a cancelled context")
	}
}

func TestGetTask(t *testing.T) {
	c, rec := newTestServer(t, 200, `[{"id":"5","name":"n","owner":"o","command":"c"}]`)

	got, err := c.GetTask(context.Background(), "5")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if rec.path != "/tasks" || rec.query != "id=5" {
		t.Errorf("request = %s?%s, want /tasks?id=5", rec.path, rec.query)
	}
	if got.ID != "5" {
		t.Errorf("got %+v", got)
	}
}

func TestFindTasks(t *testing.T) {
	c, rec := newTestServer(t, 200, `[{"id":"5","name":"nightly backup","owner":"o","command":"c"}]`)
	got, err := c.FindTasks(context.Background(), "nightly backup")
	if err != nil {
		t.Fatalf("FindTasks: %v", err)
	}
	if rec.path != "/tasks/findByName/nightly%20backup" {
		t.Errorf("path = %s", rec.path)
	}
	if len(got) != 1 {
		t.Errorf("got %d tasks, want 1", len(got))
	}

	c, _ = newTestServer(t, 404, ``)
	got, err = c.FindTasks(context.Background(), "none")
	if err != nil {
		t.Fatalf("FindTasks on 404: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty slice", got)
	}
}
