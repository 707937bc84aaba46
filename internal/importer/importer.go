// Package importer bulk-loads a directory of workout exports into the log.
package importer

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/repshape/internal/ingest"
	"github.com/claude/repshape/internal/ingest/alpha"
	"github.com/claude/repshape/internal/ingest/csvio"
)

// Format names an export layout.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatCSV   Format = "csv"
	FormatAlpha Format = "alpha"
)

// ParseFormat maps a flag value to a Format. Unknown values are an error.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatAlpha:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, csv or alpha)", s)
	}
}

// Detect guesses the layout of an export. Alpha Progression files separate
// fields with semicolons; the app's own export is comma-separated.
func Detect(data []byte) Format {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		if strings.Contains(line, ";") && !strings.Contains(line, ",exerciseName") {
			return FormatAlpha
		}
		return FormatCSV
	}
	return FormatCSV
}

func parserFor(f Format) ingest.Parser {
	if f == FormatAlpha {
		return alpha.Parser{}
	}
	return csvio.Parser{}
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsReceived   int
	WorkoutsInserted   int
	WorkoutsDuplicated int
}

// Importer reads export files and hands their workouts to a sink.
type Importer struct {
	sink   ingest.Sink
	log    *slog.Logger
	format Format
	dryRun bool
	stats  Stats
}

// New creates a new Importer. With dryRun set, files are parsed and counted
// but nothing reaches the sink.
func New(sink ingest.Sink, log *slog.Logger, format Format, dryRun bool) *Importer {
	return &Importer{sink: sink, log: log, format: format, dryRun: dryRun}
}

// Import processes each path. Directories are searched for *.csv and
// *.csv.gz files, in name order. A file that fails to parse is counted and
// skipped; a failing sink aborts the run.
func (imp *Importer) Import(ctx context.Context, paths ...string) (*Stats, error) {
	files, err := Collect(paths)
	if err != nil {
		return &imp.stats, err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, f); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(f), err)
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	data, err := ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	format := imp.format
	if format == FormatAuto {
		format = Detect(data)
	}

	workouts, err := parserFor(format).Parse(bytes.NewReader(data))
	if err != nil {
		imp.log.Warn("parse failed", "file", path, "format", format, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	if len(workouts) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	imp.stats.WorkoutsReceived += len(workouts)
	if imp.dryRun {
		imp.log.Info("parsed", "file", filepath.Base(path), "format", format, "workouts", len(workouts))
		return nil
	}

	res, err := imp.sink.ImportWorkouts(ctx, workouts)
	if err != nil {
		return err
	}
	imp.stats.WorkoutsInserted += res.WorkoutsInserted
	imp.stats.WorkoutsDuplicated += res.WorkoutsSkipped
	imp.log.Info("imported", "file", filepath.Base(path), "format", format,
		"inserted", res.WorkoutsInserted, "skipped", res.WorkoutsSkipped)
	return nil
}

// Collect expands directories into their *.csv and *.csv.gz files, in name
// order. Plain file paths are kept as given.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		for _, pattern := range []string{"*.csv", "*.csv.gz"} {
			m, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			found = append(found, m...)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
