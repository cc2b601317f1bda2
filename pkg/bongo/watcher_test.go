package bongo

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, files []string, debounce time.Duration, reloads *atomic.Int32, reloadErr error, errs *atomic.Int32) *configWatcher {
	t.Helper()
	cw, err := newConfigWatcher(files, debounce,
		func() error {
			reloads.Add(1)
			return reloadErr
		},
		func(error) {
			if errs != nil {
				errs.Add(1)
			}
		},
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return cw
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConfigWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 50*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	defer cw.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, configPath, "modified")
	time.Sleep(250 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("expected 1 reload, got %d", got)
	}
}

func TestConfigWatcher_WatchesSprites(t *testing.T) {
	configDir := t.TempDir()
	spriteDir := t.TempDir()
	configPath := filepath.Join(configDir, "config.yaml")
	spritePath := filepath.Join(spriteDir, "bg.png")
	writeFile(t, configPath, "initial")
	writeFile(t, spritePath, "png")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath, spritePath, ""}, 50*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	defer cw.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, spritePath, "new png")
	time.Sleep(250 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("expected 1 reload for a sprite change, got %d", got)
	}
}

func TestConfigWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 100*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	defer cw.Stop()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		writeFile(t, configPath, "content "+string(rune('0'+i)))
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(250 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("expected 1 reload (debounced), got %d", got)
	}
}

func TestConfigWatcher_HandlesAtomicSave(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 50*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	defer cw.Stop()

	time.Sleep(50 * time.Millisecond)
	tempPath := configPath + ".tmp"
	writeFile(t, tempPath, "atomic save content")
	if err := os.Rename(tempPath, configPath); err != nil {
		t.Fatalf("rename: %v", err)
	}
	time.Sleep(250 * time.Millisecond)

	if got := reloads.Load(); got < 1 {
		t.Errorf("expected at least 1 reload for atomic save, got %d", got)
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 50*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	defer cw.Stop()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.txt"), "noise")
	time.Sleep(200 * time.Millisecond)

	if got := reloads.Load(); got != 0 {
		t.Errorf("expected 0 reloads for unrelated files, got %d", got)
	}
}

func TestConfigWatcher_ReportsReloadErrors(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads, errs atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 50*time.Millisecond, &reloads, errors.New("bad config"), &errs)
	cw.Start()
	defer cw.Stop()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, configPath, "broken")
	time.Sleep(250 * time.Millisecond)

	if errs.Load() != 1 {
		t.Errorf("expected 1 reported error, got %d", errs.Load())
	}
}

func TestConfigWatcher_StopPreventsReload(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "initial")

	var reloads atomic.Int32
	cw := newTestWatcher(t, []string{configPath}, 50*time.Millisecond, &reloads, nil, nil)
	cw.Start()
	time.Sleep(50 * time.Millisecond)
	cw.Stop()
	cw.Stop()

	writeFile(t, configPath, "modified")
	time.Sleep(200 * time.Millisecond)

	if got := reloads.Load(); got != 0 {
		t.Errorf("expected 0 reloads after stop, got %d", got)
	}
}

func TestNewConfigWatcherMissingDir(t *testing.T) {
	_, err := newConfigWatcher([]string{"/nonexistent/dir/config.yaml"}, 0, nil, nil)
	if err == nil {
		t.Error("expected error watching a missing directory")
	}
}
