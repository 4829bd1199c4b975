package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// AgentsWatcher watches an agents yaml file and invokes a callback with
// the re-parsed contents on every write.
type AgentsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchAgentsFile starts watching path. onChange runs on each successful
// re-parse; parse failures are reported through onError and watching
// continues.
func WatchAgentsFile(path string, onChange func(*AgentsFile), onError func(error)) (*AgentsWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	aw := &AgentsWatcher{
		path:    path,
		watcher: watcher,
		done:    make(chan struct{}),
	}

	go aw.loop(onChange, onError)

	return aw, nil
}

func (aw *AgentsWatcher) loop(onChange func(*AgentsFile), onError func(error)) {
	for {
		select {
		case <-aw.done:
			return
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(aw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			f, err := LoadAgentsFile(aw.path)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(f)
		case <-aw.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// Close stops the watcher.
func (aw *AgentsWatcher) Close() {
	close(aw.done)
	aw.watcher.Close()
}
