// Package sigctx ties process lifetime to termination signals.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals stop the daemons gracefully.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// NotifyContext returns a context that is done on the first of [Signals]
// or when the returned stop function is called.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), Signals...)
}
