// Package logging sets up the launcher's own debug log.
//
// This log records launch decisions (which check failed, what the sync
// program exited with) and is separate from the sync program's sync.log,
// which the launcher never touches. It is off unless a path is configured.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits. The launcher writes a handful of lines per run, so
// these are generous.
const (
	maxSizeMB  = 5
	maxBackups = 2
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to a size-rotated file at path, plus the
// closer for the underlying file. An empty path returns a logger that
// discards everything.
func New(path string) (*log.Logger, io.Closer) {
	if path == "" {
		return log.New(io.Discard, "", 0), nopCloser{}
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	return log.New(w, "[syncrun] ", log.LstdFlags), w
}
