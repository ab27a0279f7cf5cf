package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

const requestIDKey = "request_id"

// Init sets up the text formatter and level for all log statements.
func Init(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	f := new(logrus.TextFormatter)
	f.TimestampFormat = "2006-01-02 15:04:05"
	f.FullTimestamp = true
	logrus.SetFormatter(f)
	logrus.SetLevel(lvl)
	return nil
}

// Default returns a logger without request fields.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithRequestID stores a logger tagged with requestID in ctx.
func WithRequestID(ctx context.Context, requestID string) (context.Context, *logrus.Entry) {
	if ctx == nil {
		ctx = context.Background()
	}
	entry := logrus.WithField(requestIDKey, requestID)
	return context.WithValue(ctx, ctxKey{}, entry), entry
}

// WithField returns a context whose logger carries the extra field.
func WithField(ctx context.Context, key string, value any) context.Context {
	return context.WithValue(ctx, ctxKey{}, FromContext(ctx).WithField(key, value))
}

// FromContext returns the request logger, or the default logger when the
// context carries none.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return Default()
	}
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return Default()
}

// RequestID returns the request id attached by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry)
	if !ok {
		return ""
	}
	s, _ := entry.Data[requestIDKey].(string)
	return s
}
