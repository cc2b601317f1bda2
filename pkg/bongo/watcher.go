package bongo

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher reloads when the config file or any sprite it names changes.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // absolute paths
	debounce time.Duration
	onReload func() error
	onError  func(error)

	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// newConfigWatcher watches the parent directories of files so editors that
// save by rename are seen. onReload runs once per burst of changes.
func newConfigWatcher(files []string, debounce time.Duration, onReload func() error, onError func(error)) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	cw := &configWatcher{
		watcher:   watcher,
		files:     make(map[string]bool, len(files)),
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		cw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return cw, nil
}

// Start begins watching in a goroutine. It must be called at most once.
func (cw *configWatcher) Start() {
	go cw.watchLoop()
}

// Stop ends the watch loop and waits for it to exit. Safe to call twice.
func (cw *configWatcher) Stop() {
	cw.stopOnce.Do(func() { close(cw.stopCh) })
	<-cw.stoppedCh
}

func (cw *configWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return cw.files[abs]
}

func (cw *configWatcher) watchLoop() {
	defer close(cw.stoppedCh)
	defer cw.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cw.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			if cw.onReload == nil {
				continue
			}
			if err := cw.onReload(); err != nil && cw.onError != nil {
				cw.onError(err)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.onError != nil {
				cw.onError(err)
			}
		}
	}
}
