package observability

import (
	"log/slog"
	"sync"

	"github.com/getsentry/sentry-go"
)

var (
	sentryMu    sync.Mutex
	sentryReady bool
)

// ConfigureSentry initializes the Sentry SDK with dsn. An empty dsn
// disables sending -- CaptureError then only logs.
func ConfigureSentry(dsn, environment string) error {
	sentryMu.Lock()
	defer sentryMu.Unlock()
	if dsn == "" {
		sentryReady = false
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: environment}); err != nil {
		return err
	}
	sentryReady = true
	return nil
}

// CaptureError reports err to Sentry when a DSN is configured and
// always logs via slog, implementing the application error handler's
// last stop (spec.md §4.9 reportError's unhandled-at-root step).
func CaptureError(source string, err error) {
	sentryMu.Lock()
	ready := sentryReady
	sentryMu.Unlock()
	if ready {
		sentry.CaptureException(err)
	}
	slog.Error("reactive-core: unhandled error", "source", source, "err", err)
}
