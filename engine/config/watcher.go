package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/brushwork/engine/core"
)

/**
 * @brief Watches a configuration file and publishes the configuration every
 * time the file changes and still parses. Only the most recent configuration
 * is kept until it is received.
 */
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	updates  chan *Config
	done     chan struct{}
	stopped  chan struct{}
}

/**
 * @brief Starts watching path. The directory is watched rather than the file
 * so editors replacing the file on save are noticed.
 */
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	<-w.stopped
	return nil
}

func (w *Watcher) run() {
	defer close(w.stopped)
	defer w.fsnotify.Close()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	info, err := os.Stat(w.path)
	if err != nil || info.Size() == 0 {
		// truncated while being written, the next write event carries the content
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		core.LogWarn("ignoring configuration change: %s", err)
		return
	}

	// replace a configuration nobody picked up yet
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	core.LogInfo("configuration reloaded from %s", w.path)
}
