// mergecsv merges one or more 1-minute CSV exports into a base table from
// the command line, using the same validation, deduplication, and audit
// trail as the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/avelez/ohlc-data/internal/auditlog"
	"github.com/avelez/ohlc-data/internal/config"
	"github.com/avelez/ohlc-data/internal/database"
	"github.com/avelez/ohlc-data/internal/ingest"
	"github.com/avelez/ohlc-data/internal/service"
	"github.com/avelez/ohlc-data/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/ohlcwd.local.yaml", "path to config file")
	schema := flag.String("schema", "", "destination schema")
	table := flag.String("table", "", "destination base table")
	flag.Parse()

	if *schema == "" || *table == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mergecsv -schema SCHEMA -table TABLE [-config PATH] FILE...")
		os.Exit(2)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	spec, ok := store.BaseTables[*table]
	if !ok {
		logger.Error("not a merge destination", "table", *table)
		os.Exit(1)
	}

	files := make([]service.File, 0, flag.NArg())
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("open csv", "path", path, "error", err)
			os.Exit(1)
		}
		rows, err := ingest.ReadBars(f, spec.Kind)
		f.Close()
		if err != nil {
			logger.Error("read csv", "path", path, "error", err)
			os.Exit(1)
		}
		files = append(files, service.File{Name: filepath.Base(path), Rows: rows})
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	merger := service.NewMerger(st, auditlog.New(cfg.Audit.Path), logger)

	result, err := merger.Merge(ctx, service.MergeRequest{
		Schema: *schema,
		Table:  *table,
		Files:  files,
	})
	if err != nil {
		logger.Error("merge failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(result)
}
