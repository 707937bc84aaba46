package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/repshape/internal/config"
	"github.com/claude/repshape/internal/importer"
	"github.com/claude/repshape/internal/logbook"
	"github.com/claude/repshape/internal/logging"
	"github.com/claude/repshape/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	formatFlag := flag.String("format", "auto", "export format: auto, csv or alpha")
	dryRun := flag.Bool("dry-run", false, "parse and count without writing to the log")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: repshape-import [-config config.yaml] [-format auto|csv|alpha] [-dry-run] <file or dir>...\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	format, err := importer.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	log, closer := logging.New(logging.Options{Level: level, File: cfg.Log.File})
	defer closer.Close()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage.Options())
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	book := logbook.New(store, log)
	if err := book.Load(ctx); err != nil {
		log.Error("failed to load logbook", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode, nothing will be written")
	}

	imp := importer.New(book, log, format, *dryRun)
	stats, err := imp.Import(ctx, flag.Args()...)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_received", stats.WorkoutsReceived,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_duplicated", stats.WorkoutsDuplicated,
	)
}
