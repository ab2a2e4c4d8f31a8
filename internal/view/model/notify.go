package model

// Fixed notification texts, one pair per operation.
const (
	MsgFetchFailed   = "Failed to fetch tasks!"
	MsgCreated       = "Task created successfully!"
	MsgCreateFailed  = "Failed to create task! Check command validity."
	MsgDeleted       = "Task deleted successfully!"
	MsgDeleteFailed  = "Failed to delete task!"
	MsgExecuted      = "Task execution completed!"
	MsgExecuteFailed = "Failed to execute task!"
	MsgJournalFailed = "Failed to load journal!"
)

// Notifier shows transient messages to the user. It may be called from any
// goroutine.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}

func (nopNotifier) Error(string) {}
