package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"sarawak-tourism/internal/shared/contextkeys"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInterface_Contract(t *testing.T) {
	var _ Logger = NewLogger()
	var _ Logger = NewLoggerWithConfig("info", "json")
	var _ Logger = NewZapLogger("debug", "json")
	var _ Logger = New("zap", "info", "text")
	var _ Logger = New("logrus", "info", "text")
}

func TestNew_SelectsBackend(t *testing.T) {
	_, isZap := New("ZAP", "info", "json").(*ZapLogger)
	assert.True(t, isZap)

	_, isLogrus := New("", "info", "json").(*LogrusLogger)
	assert.True(t, isLogrus)
}

func TestLogrusLogger_WithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	l := &LogrusLogger{entry: logrus.NewEntry(base)}

	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, "user_1")
	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, "req-9")

	l.WithContext(ctx).WithComponent("itinerary").Info("generated")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "user_1", line["user_id"])
	assert.Equal(t, "req-9", line["request_id"])
	assert.Equal(t, "itinerary", line["component"])
	assert.Equal(t, "generated", line["msg"])
}

func TestLogrusLogger_WithFields(t *testing.T) {
	logger := NewLogger()
	logger2 := logger.WithFields(map[string]interface{}{"foo": "bar"})
	assert.NotNil(t, logger2)
}

func TestZapLogger_WithFieldsAndContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, "user_2")
	l.WithContext(ctx).WithFields(map[string]interface{}{"collection": "events"}).Warnf("slow query %d", 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "slow query 3", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "user_2", fields["user_id"])
	assert.Equal(t, "events", fields["collection"])
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, getLogLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, getLogLevel("WARNING"))
	assert.Equal(t, logrus.InfoLevel, getLogLevel("nonsense"))
}
