package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk and publishes each valid
// result on Updates. Files that fail to load are logged and skipped.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  common.Logger

	updates chan Config
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched rather than the file so
// editors that save by renaming a temporary file are still seen.
//
// Parameters:
//   - path: the config file to watch
//   - logger: receives reload failures; nil disables logging
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the watch cannot be established
func Watch(path string, logger common.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config %s: %w", abs, err)
	}
	if logger == nil {
		logger = common.NewNopLogger()
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		logger:  logger,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Updates delivers the most recent valid config after each change. Only the newest
// unread config is kept.
//
// Returns:
//   - <-chan Config: the update channel, closed by Close
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Close stops watching and closes Updates. Safe to call more than once.
//
// Returns:
//   - error: error from releasing the underlying watch
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.updates)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warnf("config reload skipped: %v", err)
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("config watch: %v", err)
		}
	}
}

func (w *Watcher) publish(cfg Config) {
	// drop the stale unread config, if any
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
