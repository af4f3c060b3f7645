package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchShaders calls changed from the watcher goroutine whenever a shader
// file in dir is written, created or renamed.
func watchShaders(dir string, changed func()) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if isShaderChange(ev) {
					logger.Info("shader changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
					changed()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("shader watch", "err", err)
			}
		}
	}()
	return w, nil
}

func isShaderChange(ev fsnotify.Event) bool {
	return filepath.Ext(ev.Name) == ".glsl" &&
		ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
