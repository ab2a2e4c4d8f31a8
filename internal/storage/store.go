package storage

const (
	KeyPrefix = "taskdeck__"
)

// Store remembers which executions the user has already looked at.
// A run is identified by its task id and model.TaskExecution.RunKey.
type Store interface {
	Visit(taskID, runKey string)
	IsVisited(taskID, runKey string) bool

	// Forget drops everything recorded for a deleted task.
	Forget(taskID string)
	Close() error
}
