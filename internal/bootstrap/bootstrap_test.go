package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/config"
	"github.com/osse101/DegenBox_Go/internal/database/memory"
	"github.com/osse101/DegenBox_Go/internal/worker"
)

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, EventDeadLetterFileName), nil, LogFilePermission))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00"))
	assert.Contains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-12_00-00-00"))
	assert.FileExists(t, filepath.Join(dir, EventDeadLetterFileName))
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	assert.NotPanics(t, func() {
		cleanupLogs(filepath.Join(t.TempDir(), "missing"), LogFileRetentionCount)
	})
}

func TestSetupLogger(t *testing.T) {
	cfg := &config.Config{LogDir: filepath.Join(t.TempDir(), "logs"), LogLevel: "debug", LogFormat: "json"}

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	assert.DirExists(t, cfg.LogDir)
	assert.FileExists(t, f.Name())
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{LogDir: filepath.Join(t.TempDir(), "logs")}

	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, events.Bus)
	require.NotNil(t, events.Publisher)
	require.NotNil(t, events.DeadLetter)

	RegisterEventHandlers(events.Publisher)
	GracefulShutdown(context.Background(), ShutdownComponents{Events: events})
}

func TestInitializeStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, err := InitializeStorage(context.Background(), &config.Config{Storage: config.StorageMemory})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, s.Store)
		assert.Nil(t, s.Pool)
		s.Close()
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := InitializeStorage(context.Background(), &config.Config{Storage: "sqlite"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownStorage)
	})
}

func TestGracefulShutdown_PartialComponents(t *testing.T) {
	pool := worker.NewPool(context.Background(), 1, 1)
	pool.Start()

	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Pool: pool})
	})
}
