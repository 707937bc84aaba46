// Package upload pushes local workout exports to a remote repshape server,
// remembering which files were already sent.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/repshape/internal/importer"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsInserted int
	WorkoutsSkipped  int
}

// Uploader walks export files and POSTs each new one to the server.
type Uploader struct {
	client *Client
	state  *StateDB
	format importer.Format
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. state may be nil to disable tracking.
func New(client *Client, state *StateDB, format importer.Format, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		format: format,
		dryRun: dryRun,
		log:    log,
	}
}

// Run uploads every export found under paths.
func (u *Uploader) Run(ctx context.Context, paths ...string) (*Stats, error) {
	files, err := importer.Collect(paths)
	if err != nil {
		return &u.stats, fmt.Errorf("collecting files: %w", err)
	}
	u.stats.FilesTotal = len(files)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.uploadFile(ctx, f)
	}
	return &u.stats, nil
}

func (u *Uploader) uploadFile(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		u.log.Warn("stat failed", "file", path, "error", err)
		u.stats.FilesErrored++
		return
	}
	hash, err := HashFile(path)
	if err != nil {
		u.log.Warn("hash failed", "file", path, "error", err)
		u.stats.FilesErrored++
		return
	}

	if u.state != nil {
		done, err := u.state.IsUploaded(path, info.Size(), hash)
		if err != nil {
			u.log.Warn("state lookup failed", "file", path, "error", err)
		}
		if done {
			u.stats.FilesSkipped++
			return
		}
	}

	data, err := importer.ReadFile(path)
	if err != nil {
		u.log.Warn("read failed", "file", path, "error", err)
		u.stats.FilesErrored++
		return
	}
	format := u.format
	if format == importer.FormatAuto {
		format = importer.Detect(data)
	}

	if u.dryRun {
		u.log.Info("would upload", "file", path, "format", format, "bytes", len(data))
		u.stats.FilesUploaded++
		return
	}

	result, err := u.client.SendFile(ctx, data, format)
	if err != nil {
		u.log.Error("upload failed", "file", path, "error", err)
		u.stats.FilesErrored++
		return
	}
	u.stats.FilesUploaded++
	u.stats.WorkoutsInserted += result.WorkoutsInserted
	u.stats.WorkoutsSkipped += result.WorkoutsSkipped
	u.log.Info("uploaded", "file", path, "format", format,
		"inserted", result.WorkoutsInserted, "skipped", result.WorkoutsSkipped)

	if u.state != nil {
		if err := u.state.MarkUploaded(path, info.Size(), hash, string(format), result.WorkoutsInserted); err != nil {
			u.log.Warn("state update failed", "file", path, "error", err)
		}
	}
}
