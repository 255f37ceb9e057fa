package internal

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounce window for editors that write config files in several syscalls
const configWatchSettle = 500 * time.Millisecond

// ConfigWatcher invokes a callback when the config file changes on disk. The
// parent directory is watched instead of the file itself so atomic
// rename-into-place saves are picked up too.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()

	mux   sync.Mutex
	timer *time.Timer
}

func NewConfigWatcher(path string, onChange func()) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	cw := &ConfigWatcher{watcher: watcher, path: path, onChange: onChange}
	go cw.run()
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Infof("Config file %s changed on disk", cw.path)
			cw.schedule()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("Config watcher error : %s", err.Error())
		}
	}
}

func (cw *ConfigWatcher) schedule() {
	cw.mux.Lock()
	defer cw.mux.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(configWatchSettle, cw.onChange)
}

func (cw *ConfigWatcher) Stop() {
	cw.mux.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
	cw.mux.Unlock()
	_ = cw.watcher.Close()
}
