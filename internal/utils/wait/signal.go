package wait

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SetupStopSignal returns a context cancelled on the first SIGINT or
// SIGTERM. A second signal exits the process.
func SetupStopSignal(parent context.Context) context.Context {
	stopCtx, cancel := context.WithCancel(parent)

	signCh := make(chan os.Signal, 2)
	signal.Notify(signCh, shutdownSignals...)
	go func() {
		s := <-signCh
		logrus.Infof("[signal] received %v, beginning shutdown process...", s)
		cancel()

		// Exit directly when received second signal
		<-signCh
		logrus.Warn("[signal] received signal again, will be force to exit")
		os.Exit(1)
	}()
	return stopCtx
}
