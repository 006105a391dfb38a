package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher watches one settings file and invokes the handler when it
// changes. The containing directory is watched rather than the file
// itself, so atomic saves (write to temp, rename over) are caught.
type fileWatcher struct {
	watcher *fsnotify.Watcher

	// path is the absolute path of the watched settings file.
	path string

	// handler is invoked with the path after a write or create.
	handler func(path string)

	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// newFileWatcher creates a watcher for the settings file at path and
// starts its event loop.
func newFileWatcher(path string, handler func(string)) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &fileWatcher{
		watcher: fsw,
		path:    abs,
		handler: handler,
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// processLoop dispatches file system events for the watched file.
func (w *fileWatcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.handler(w.path)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep processing events.
		}
	}
}

// close stops the watcher and waits for the event loop to exit.
func (w *fileWatcher) close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
