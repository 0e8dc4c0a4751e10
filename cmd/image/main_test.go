package main

import (
	"OpenAIConsole/internal/ai"
	"OpenAIConsole/internal/service/image"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCreate(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()
	dir := t.TempDir()
	svc := image.NewService(ai.NewStubClient(), image.NewDownloader(1<<20, false), image.NewProcessor(dir), image.NewViewer(false), logger)

	var out bytes.Buffer
	require.Equal(t, 0, create(context.Background(), svc, "a lighthouse", &out, logger))
	path := strings.TrimSpace(out.String())
	assert.Equal(t, dir, filepath.Dir(path))
	assert.FileExists(t, path)

	out.Reset()
	assert.Equal(t, 1, create(context.Background(), svc, " ", &out, logger))
	assert.Empty(t, out.String())
	assert.Equal(t, 1, logs.FilterMessage("Image generation failed").Len())
}
