package main

import (
	"OpenAIConsole/internal/ai"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAsk(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	var out bytes.Buffer
	assert.Equal(t, 0, ask(context.Background(), ai.NewStubClient(), "ping", &out, logger))
	assert.Equal(t, "OpenAI: request received (1): ping\n", out.String())

	out.Reset()
	assert.Equal(t, 1, ask(context.Background(), ai.NewStubClient(), "  ", &out, logger))
	assert.Empty(t, out.String())
	assert.Equal(t, 1, logs.FilterMessage("Chat request failed").Len())
}
