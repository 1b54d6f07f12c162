package tui

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rps-arcade/internal/storage"
)

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()

	assert.Equal(t, ":23234", cfg.Address)
	assert.Equal(t, storage.MemoryPath, cfg.JournalPath)
	assert.Positive(t, cfg.IdleTimeout)
	assert.NoError(t, cfg.Timing.Validate())
}

func TestNewSSHServerCreatesHostKey(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.NotNil(t, srv.store, "journal is opened for the sessions")
	_, statErr := os.Stat(cfg.HostKeyPath)
	assert.NoError(t, statErr)

	require.NoError(t, srv.Shutdown())
	assert.NotNil(t, srv.store, "sessions still draining keep their journal handle")
	_, err = srv.store.SessionTally("s")
	assert.Error(t, err, "journal is closed")

	// A second close is a no-op.
	assert.NotPanics(t, srv.closeStore)
}

func TestSSHServerSessionsReadStoreDuringShutdown(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 100 {
			// The same read teaHandler makes for each new session.
			if srv.store == nil {
				t.Error("store cleared under a live session")
				return
			}
		}
	}()
	require.NoError(t, srv.Shutdown())
	wg.Wait()
}

func TestNewSSHServerWithoutJournal(t *testing.T) {
	dir := t.TempDir()

	// A directory cannot be opened as a database file.
	blocker := filepath.Join(dir, "journal")
	require.NoError(t, os.MkdirAll(blocker, 0o755))

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.JournalPath = blocker
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err, "a broken journal does not stop the server")
	assert.Nil(t, srv.store)
	require.NoError(t, srv.Shutdown())
}
