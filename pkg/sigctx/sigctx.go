package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns a root context canceled on shutdown signals.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
}
