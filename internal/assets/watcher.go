package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to a fixed set of files under one directory. Events
// arrive on a background goroutine and are queued until Pending is called
// from the render thread.
type Watcher struct {
	fs     *fsnotify.Watcher
	dir    string
	wanted map[string]bool

	mu      sync.Mutex
	pending map[string]bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher watches every directory that holds one of files. Paths in
// files are slash-separated and relative to dir, as graphics.Library
// reports them.
func NewWatcher(dir string, files []string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:      fw,
		dir:     dir,
		wanted:  make(map[string]bool, len(files)),
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		f = path.Clean(f)
		w.wanted[f] = true
		dirs[filepath.Join(dir, filepath.FromSlash(path.Dir(f)))] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	w.wg.Add(1)
	go w.loop()

	slog.Info("watching shaders", "dir", dir, "files", len(w.wanted))
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if name, ok := w.relevant(ev); ok {
				w.mu.Lock()
				w.pending[name] = true
				w.mu.Unlock()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("shader watcher error", "err", err)
		}
	}
}

// relevant maps an event to the watched file it touches. Editors that save
// by rename show up as Create on the target name.
func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	rel, err := filepath.Rel(w.dir, ev.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return rel, w.wanted[rel]
}

// Pending returns the files changed since the last call, sorted.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for name := range w.pending {
		out = append(out, name)
	}
	clear(w.pending)
	sort.Strings(out)
	return out
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
