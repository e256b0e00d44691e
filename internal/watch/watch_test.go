package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leapstack-labs/oxoff/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, files FilesFunc) <-chan string {
	t.Helper()

	changes := make(chan string, 16)
	w := New(files, func(path string) { changes <- path }, Options{
		Debounce: 50 * time.Millisecond,
		Logger:   testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give the watcher time to register its directories.
	time.Sleep(50 * time.Millisecond)
	return changes
}

func waitChange(t *testing.T, changes <-chan string) string {
	t.Helper()
	select {
	case path := <-changes:
		return path
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
		return ""
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{}`)

	changes := startWatcher(t, func() []string { return []string{path} })

	require.NoError(t, os.WriteFile(path, []byte(`{"rules": {}}`), 0o600))
	assert.Equal(t, Key(path), waitChange(t, changes))
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{}`)

	changes := startWatcher(t, func() []string { return []string{path} })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
	}
	waitChange(t, changes)

	select {
	case extra := <-changes:
		t.Fatalf("unexpected second change %s", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{}`)

	changes := startWatcher(t, func() []string { return []string{path} })

	testutil.WriteFile(t, dir, "unrelated.json", `{}`)
	select {
	case got := <-changes:
		t.Fatalf("unexpected change %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_PicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{}`)
	shared := filepath.Join(dir, "shared", "base.json")
	testutil.WriteFile(t, dir, "shared/base.json", `{}`)

	var mu sync.Mutex
	files := []string{path}
	changes := startWatcher(t, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), files...)
	})

	mu.Lock()
	files = append(files, shared)
	mu.Unlock()

	require.NoError(t, os.WriteFile(path, []byte(`{"extends": ["./shared/base.json"]}`), 0o600))
	waitChange(t, changes)

	// Allow the re-sync after the first change to add the new directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(shared, []byte(`{"rules": {}}`), 0o600))
	assert.Equal(t, Key(shared), waitChange(t, changes))
}

func TestKey(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, filepath.IsAbs(Key(filepath.Join(dir, "x.json"))))
	assert.Equal(t, Key(filepath.Join(dir, "a", "..", "x.json")), Key(filepath.Join(dir, "x.json")))
}
