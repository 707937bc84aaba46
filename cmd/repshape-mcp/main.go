package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/repshape/internal/config"
	"github.com/claude/repshape/internal/logbook"
	"github.com/claude/repshape/internal/logging"
	"github.com/claude/repshape/internal/mcp"
	"github.com/claude/repshape/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file, used when -server is empty")
	serverURL := flag.String("server", "", "repshape server URL; reads the local store when empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs go to stderr and the log file.
	level, _ := cfg.Log.SlogLevel()
	log, closer := logging.New(logging.Options{Level: level, File: cfg.Log.File, Stdout: os.Stderr})
	defer closer.Close()

	ds, cleanup, err := dataSource(*serverURL, cfg, log)
	if err != nil {
		log.Error("failed to open data source", "error", err)
		os.Exit(1)
	}
	defer cleanup.Close()

	log.Info("RepShape MCP starting", "version", Version, "remote", *serverURL != "")
	if err := mcpserver.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func dataSource(serverURL string, cfg *config.Config, log *slog.Logger) (mcp.DataSource, io.Closer, error) {
	if serverURL != "" {
		return mcp.NewHTTPClient(serverURL), nopCloser{}, nil
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage.Options())
	if err != nil {
		return nil, nil, err
	}
	book := logbook.New(store, log)
	if err := book.Load(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return mcp.LocalSource{Book: book}, store, nil
}
