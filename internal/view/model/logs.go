package model

type LogItem struct {
	Bytes []byte
}

type LogChan chan *LogItem

// LogsBuffer feeds log lines to the logs page. Lines are dropped while
// the channel is full so logging never waits on the screen.
type LogsBuffer struct {
	LogChan
}

func NewLogsBuffer() *LogsBuffer {
	return &LogsBuffer{
		LogChan: make(LogChan, 100),
	}
}

func (l *LogsBuffer) GetLogChan() LogChan {
	return l.LogChan
}

// Write implement io Writer interface
func (l *LogsBuffer) Write(p []byte) (int, error) {
	b := make([]byte, len(p))
	copy(b, p)
	select {
	case l.LogChan <- &LogItem{Bytes: b}:
	default:
	}
	return len(p), nil
}
