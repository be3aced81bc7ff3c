package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange after content files under the directory change. Bursts
// of events within the debounce window produce a single call. Watch blocks
// until ctx is done.
func (s *DirSource) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.Dir, err)
	}
	postsDir := filepath.Join(s.Dir, "posts")
	if err := watcher.Add(postsDir); err != nil {
		s.logger().Warn("posts directory not watched", "dir", postsDir, "err", err)
	}

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	fire := func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger().Error("content change handler panicked", "panic", r)
			}
		}()
		onChange()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isContentFile(event.Name) {
				// A posts/ directory created after startup.
				if event.Has(fsnotify.Create) && event.Name == postsDir {
					_ = watcher.Add(postsDir)
				}
				continue
			}
			s.logger().Debug("content file event", "op", event.Op.String(), "file", filepath.Base(event.Name))

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, fire)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger().Warn("content watcher error", "err", err)
		}
	}
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".toml":
		return !strings.Contains(filepath.ToSlash(name), "/contacts/")
	}
	return false
}
