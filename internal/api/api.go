package api

import (
	"context"

	"github.com/xiaorui77/taskdeck/pkg/model"
)

// TaskAPI is the task service as the view sees it.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, name, owner, command string) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ExecuteTask(ctx context.Context, id string) (*model.Task, error)
}

// Lookup holds the server-side queries only the command line uses.
type Lookup interface {
	GetTask(ctx context.Context, id string) (*model.Task, error)
	FindTasks(ctx context.Context, name string) ([]model.Task, error)
}
