package logs

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// prefixHook turns well known entry fields into a message prefix, so a
// plain text log reads "[api] Task[42] ..." without field columns.
type prefixHook struct{}

func NewPrefixHook() logrus.Hook {
	return &prefixHook{}
}

func (f *prefixHook) Fire(entry *logrus.Entry) error {
	if entry == nil || entry.Data == nil {
		return nil
	}
	if strings.HasPrefix(entry.Message, "[") {
		// pass
		return nil
	}
	prefix := ""
	if catalog, ok := entry.Data[FieldCatalog]; ok {
		prefix += fmt.Sprintf("[%v] ", catalog)
	}
	if op, ok := entry.Data[FieldOp]; ok {
		prefix += fmt.Sprintf("(%v) ", op)
	}
	if taskID, ok := entry.Data[FieldTaskID]; ok {
		prefix += fmt.Sprintf("Task[%v] ", taskID)
	}
	entry.Message = prefix + entry.Message
	return nil
}

func (f *prefixHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.TraceLevel, logrus.DebugLevel, logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel}
}
