package config

import (
	"fmt"
	"io"
	"os"

	"charm.land/log/v2"
)

// NewLogger creates a component logger writing to w.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// OpenLogFile opens the XDG state log file for appending. The caller closes it.
func OpenLogFile() (*os.File, error) {
	path, err := GetLogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
