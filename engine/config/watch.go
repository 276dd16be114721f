package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a config file whenever it changes and offers the newest result on a channel.
// Only the latest unread Config is kept.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors that replace the file
// on save are still seen.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Watcher: the running watcher
//   - error: ErrNoPath for an empty path, or the fsnotify error
func Watch(path string) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:    abs,
		fs:      fw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers each successfully parsed change.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				common.Logger().Warn("config reload failed", slog.String("path", w.path), slog.Any("err", err))
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				common.Logger().Warn("config watcher error", slog.Any("err", err))
			}
		}
	}
}

// publish replaces any unread update with cfg.
func (w *Watcher) publish(cfg Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
