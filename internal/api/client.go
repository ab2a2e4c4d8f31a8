package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	error2 "github.com/xiaorui77/taskdeck/pkg/error"
	"github.com/xiaorui77/taskdeck/pkg/model"
)

const (
	OpList    = "list tasks"
	OpGet     = "get task"
	OpFind    = "find tasks"
	OpCreate  = "create task"
	OpDelete  = "delete task"
	OpExecute = "execute task"

	// error bodies are only read for logging
	maxErrBody = 64 << 10
)

var log = logrus.WithField("catalog", "api")

// Client talks to the task service over HTTP.
type Client struct {
	base   string
	client *http.Client
}

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient returns a client for the service at baseURL. The default
// transport has dial and handshake timeouts but no overall deadline:
// executing a task blocks until the server has a result.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be an absolute http(s) url", baseURL)
	}

	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   15 * time.Second,
					KeepAlive: 10 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       60 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, OpList, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, name, owner, command string) (*model.Task, error) {
	req := &model.CreateTaskRequest{Name: name, Owner: owner, Command: command}
	t := &model.Task{}
	if err := c.do(ctx, OpCreate, http.MethodPut, "/tasks", req, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ExecuteTask(ctx context.Context, id string) (*model.Task, error) {
	t := &model.Task{}
	if err := c.do(ctx, OpExecute, http.MethodPut, "/tasks/"+url.PathEscape(id)+"/execute", nil, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTask fetches one task. The service answers with a one element list.
func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, OpGet, http.MethodGet, "/tasks?id="+url.QueryEscape(id), nil, &tasks); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, error2.New(OpGet, http.StatusNotFound, fmt.Errorf("task %s not found", id))
	}
	return &tasks[0], nil
}

// FindTasks runs the server-side name search. The service reports an empty
// result as 404, which is returned here as an empty slice.
func (c *Client) FindTasks(ctx context.Context, name string) ([]model.Task, error) {
	var tasks []model.Task
	err := c.do(ctx, OpFind, http.MethodGet, "/tasks/findByName/"+url.PathEscape(name), nil, &tasks)
	if error2.IsNotFound(err) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return error2.New(op, 0, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return error2.New(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("%s %s failed: %v", method, path, err)
		return error2.New(op, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	log.Debugf("%s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start).Truncate(time.Millisecond))

	if resp.StatusCode >= http.StatusBadRequest {
		bs, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		e := error2.New(op, resp.StatusCode, fmt.Errorf("server returned %d", resp.StatusCode))
		e.Detail = PageText(resp.Header.Get("Content-Type"), bs)
		log.WithField("status", resp.StatusCode).Warnf("%s %s rejected: %s", method, path, e.Detail)
		return e
	}

	if out == nil {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return error2.New(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
