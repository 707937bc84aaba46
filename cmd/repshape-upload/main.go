package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/repshape/internal/importer"
	"github.com/claude/repshape/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "repshape server URL (e.g. http://nas.local:8080)")
	formatFlag := flag.String("format", "auto", "export format: auto, csv or alpha")
	statePath := flag.String("state", "", "upload state database (default ~/.repshape-upload/state.db)")
	dryRun := flag.Bool("dry-run", false, "detect formats but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repshape-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: repshape-upload -server <URL> [-format auto|csv|alpha] [-dry-run] <file or dir>...\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	format, err := importer.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	path := *statePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		path = filepath.Join(home, ".repshape-upload", "state.db")
	}
	state, err := upload.OpenStateDB(path)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode, files will be read but not sent")
	}

	u := upload.New(upload.NewClient(*serverURL), state, format, *dryRun, log)
	stats, err := u.Run(context.Background(), flag.Args()...)
	if err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}

	log.Info("upload complete",
		"files_total", stats.FilesTotal,
		"files_uploaded", stats.FilesUploaded,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_skipped", stats.WorkoutsSkipped,
	)
	if stats.FilesErrored > 0 {
		os.Exit(1)
	}
}
