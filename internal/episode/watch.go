package episode

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WatchDir watches dir for episode files dropped by the recorder and calls
// handle for every *.json file that appears and parses as an episode, until
// ctx is cancelled. Files that fail to load are skipped; the watcher never
// stops over a bad file. A file rewritten with new content is reported
// again, even under the same episode ID.
func WatchDir(ctx context.Context, dir string, handle func(path string, ep *Episode)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	// os.WriteFile fires Create followed by Write for the same file, so a
	// path is deduplicated by the digest of the content it last reported.
	// Entries are dropped when the file goes away.
	reported := make(map[string][sha256.Size]byte)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(reported, event.Name)
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				continue
			}
			digest := sha256.Sum256(data)
			if reported[event.Name] == digest {
				continue
			}
			ep, err := Parse(data)
			if err != nil {
				continue // partial write or not an episode; best-effort
			}
			reported[event.Name] = digest
			handle(event.Name, ep)

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; keep watching.
		}
	}
}
