package logger_test

import (
	"context"
	"testing"

	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RejectsUnknownLevel(t *testing.T) {
	require.Error(t, logger.Init("chatty"))
}

func TestInit_SetsLevel(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(prev) })

	require.NoError(t, logger.Init("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestWithRequestID_RoundTrip(t *testing.T) {
	ctx, entry := logger.WithRequestID(context.Background(), "rid-1")

	assert.Equal(t, "rid-1", entry.Data["request_id"])
	assert.Same(t, entry, logger.FromContext(ctx))
	assert.Equal(t, "rid-1", logger.RequestID(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	entry := logger.FromContext(context.Background())
	require.NotNil(t, entry)
	assert.Empty(t, logger.RequestID(context.Background()))
}

func TestWithField_KeepsRequestID(t *testing.T) {
	ctx, _ := logger.WithRequestID(context.Background(), "rid-2")
	ctx = logger.WithField(ctx, "subject", "librarian")

	entry := logger.FromContext(ctx)
	assert.Equal(t, "librarian", entry.Data["subject"])
	assert.Equal(t, "rid-2", logger.RequestID(ctx))
}
