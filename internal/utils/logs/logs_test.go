package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestPrefixHook(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	logger.AddHook(NewPrefixHook())

	logger.WithField(FieldCatalog, "api").WithField(FieldTaskID, "42").Info("execute finished")
	if !strings.Contains(buf.String(), `msg="[api] Task[42] execute finished"`) {
		t.Errorf("log line = %q", buf.String())
	}

	buf.Reset()
	logger.WithField(FieldCatalog, "api").Info("[manual] keeps its own prefix")
	if !strings.Contains(buf.String(), `msg="[manual] keeps its own prefix"`) {
		t.Errorf("log line = %q", buf.String())
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init("loud", &bytes.Buffer{}); err == nil {
		t.Error("Init accepted an unknown level")
	}
}
