package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextLoggerEndsUpInMemory(t *testing.T) {
	Init(false)
	logger, ctx := FromWithNameAndFields(context.Background(), "test", zap.String("city", "Lima"))
	logger.Info("resolved")
	From(ctx).Debug("filtered out")

	var buf bytes.Buffer
	if err := Dump(&buf, true); err != nil {
		t.Fatalf("Failed to dump logs: %s", err)
	}
	assert.Contains(t, buf.String(), `"msg":"resolved"`)
	assert.Contains(t, buf.String(), `"city":"Lima"`)
	assert.NotContains(t, buf.String(), "filtered out")
}

func TestFromWithoutLoggerReturnsRoot(t *testing.T) {
	assert.Same(t, rootLogger, From(context.Background()))
}
