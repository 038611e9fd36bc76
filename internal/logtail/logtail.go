// Package logtail streams lines appended to the sync program's log file
// while it runs.
//
// The follower is purely an observer: it never creates, truncates or
// locks the file, and a follower that cannot keep up has no effect on
// the launch itself.
package logtail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follower tails a single log file and copies appended bytes to Out.
//
// The file usually does not exist yet when the follower starts (the sync
// program recreates its log on startup), so the parent directory is
// watched and the file is picked up on creation.
type Follower struct {
	path string
	out  io.Writer

	offset int64
}

// New returns a Follower for the log file at path.
func New(path string, out io.Writer) *Follower {
	return &Follower{path: path, out: out}
}

// Follow blocks until ctx is cancelled, emitting appended content as it
// arrives. The error return covers watcher setup only; transient read
// errors on a file being rewritten are expected and swallowed.
func (f *Follower) Follow(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Catch up on anything written before the watch started.
	f.drain()

	for {
		select {
		case <-ctx.Done():
			f.drain()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}

			// Recreation shows up as Remove (or Rename) then Create;
			// either way the next read starts from the top.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				f.offset = 0
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				f.offset = 0
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			f.drain()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// drain copies everything past the current offset to the output.
func (f *Follower) drain() {
	file, err := os.Open(f.path)
	if err != nil {
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return
	}
	if info.Size() < f.offset {
		// Truncated behind our back.
		f.offset = 0
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return
	}

	n, _ := io.Copy(f.out, file)
	f.offset += n
}
