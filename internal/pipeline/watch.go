package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch rebuilds the homepage whenever a file under the assets or
// publications directory changes, coalescing bursts of events within
// debounce. It returns when ctx is done.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range b.watchDirs() {
		if err := addDirsRecursive(watcher, dir); err != nil {
			return err
		}
	}

	out := b.cfg.OutputPath()
	rebuildReq := make(chan struct{}, 1)
	var timer *time.Timer
	trigger := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, out) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := addDirsRecursive(watcher, ev.Name); err != nil {
						b.log.Warn("watch new dir failed", "dir", ev.Name, "error", err)
					}
				}
			}
			b.log.Debug("asset changed", "path", ev.Name, "op", ev.Op.String())
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log.Warn("watcher error", "error", err)
		case <-rebuildReq:
			if _, err := b.Run(ctx); err != nil {
				b.log.Error("rebuild failed", "error", err)
			}
		}
	}
}

// watchDirs lists the on-disk directories holding build inputs.
func (b *Builder) watchDirs() []string {
	assets := filepath.Join(b.cfg.Root, filepath.FromSlash(b.cfg.AssetsDir))
	pubs := filepath.Join(b.cfg.Root, filepath.FromSlash(b.cfg.PublicationsDir))
	if rel, err := filepath.Rel(assets, pubs); err == nil && filepath.IsLocal(rel) {
		return []string{assets}
	}
	return []string{assets, pubs}
}

// relevant drops pure permission changes and writes of the output itself.
func relevant(ev fsnotify.Event, output string) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return !samePath(ev.Name, output)
}

// samePath compares absolute forms when they can be resolved, cleaned forms otherwise.
func samePath(a, b string) bool {
	if abs, err := filepath.Abs(a); err == nil {
		a = abs
	}
	if abs, err := filepath.Abs(b); err == nil {
		b = abs
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
