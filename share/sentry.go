package share

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

var sentryEnabled bool

// InitSentry enables exception capture. An empty dsn leaves capture disabled.
func InitSentry(dsn string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(
		sentry.ClientOptions{
			Dsn:           dsn,
			HTTPTransport: new(http.Transport),
		},
	)
	if err != nil {
		return errors.Wrap(err, "sentry init")
	}

	sentryEnabled = true
	return nil
}

func FlushSentry() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

// Capture logs err with its stack and forwards it to sentry.
// Context cancellation is expected and never reported.
func Capture(log Logger, err error) {
	if err == nil || IsContextClosedError(err) {
		return
	}

	if sentryEnabled {
		sentry.CaptureException(err)
	}
	if log != nil {
		log.Error("unexpected error", "error", err.Error(), "stack", stackOf(err))
	}
}

func stackOf(err error) string {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}
	return ""
}
