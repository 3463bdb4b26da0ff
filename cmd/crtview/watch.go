// DESCRIPTION
//   watch.go re-runs the encode/decode pipeline whenever the input image
//   file changes on disk, so the preview window stays live while a user
//   edits a test pattern in another tool.
//
// AUTHOR
//   crtcore contributors

package main

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
)

// watchFile calls onChange every time path is written to, until stop is
// closed. Errors from the watcher are logged, not returned, matching
// the decoder's own "never raise, just log and carry on" posture.
func watchFile(path string, log logging.Logger, stop <-chan struct{}, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "crtview: creating file watcher")
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return errors.Wrap(err, "crtview: watching "+path)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Log(logging.Warning, "file watcher error", "error", err)
			}
		}
	}()
	return nil
}
