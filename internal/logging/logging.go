// Package logging builds the process logger: slog text output to stdout,
// optionally teed into a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level slog.Level
	// File, when set, receives a copy of every record. Rotated at 50 MB.
	File string
	// Stdout defaults to os.Stdout.
	Stdout io.Writer
}

// New returns the logger and a closer for the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		name := opts.File
		if !strings.HasSuffix(name, ".log") {
			name += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   name,
			MaxSize:    50, // megabytes
			MaxBackups: 10,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotating)
		closer = rotating
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level})), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
