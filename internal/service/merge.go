// Package service implements the merge and resample workflows on top of the
// store. It owns request validation, per-destination locking, and the audit
// trail; the store below it only moves rows.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelez/ohlc-data/internal/auditlog"
	"github.com/avelez/ohlc-data/internal/dedup"
	"github.com/avelez/ohlc-data/internal/ingest"
	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/store"
)

// maxSampleDuplicates caps the duplicate keys echoed back in a merge result.
const maxSampleDuplicates = 100

// File is one uploaded CSV, already decoded into raw rows.
type File struct {
	Name string
	Rows []model.RawBar
}

// MergeRequest targets one base table in one schema with one or more files.
type MergeRequest struct {
	Schema string
	Table  string
	Files  []File
}

// MergeResult reports what one merge did. Inserted and Duplicates come from
// the partition itself, never from count differencing. Duplicates counts rows
// skipped against the destination's existing keys only; rows dropped as
// repeats within the batch are counted separately in IntraBatchDuplicates, so
// the total skipped is the sum of the two and
// CSVRowCount == Inserted + Duplicates + IntraBatchDuplicates.
type MergeResult struct {
	BatchID              uuid.UUID   `json:"batch_id"`
	Schema               string      `json:"schema"`
	Table                string      `json:"table"`
	CSVRowCount          int         `json:"csv_row_count"`
	Inserted             int         `json:"inserted"`
	Duplicates           int         `json:"duplicates"`
	IntraBatchDuplicates int         `json:"intra_batch_duplicates"`
	SampleDuplicates     []dedup.Key `json:"sample_duplicates,omitempty"`
}

// Merger appends deduplicated 1-minute bars to base tables.
type Merger struct {
	store  *store.Store
	audit  *auditlog.Logger
	locks  *destinationLocks
	logger *slog.Logger
}

// NewMerger creates a Merger. audit may be nil to disable the audit trail.
func NewMerger(st *store.Store, audit *auditlog.Logger, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		store:  st,
		audit:  audit,
		locks:  newDestinationLocks(),
		logger: logger,
	}
}

// Merge validates the request, partitions the incoming rows against the
// destination's existing keys, and appends only the new rows. The destination
// lock is held from the key read through the append so the snapshot cannot go
// stale under a concurrent merge to the same table.
func (m *Merger) Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	spec, err := m.validate(req)
	if err != nil {
		return nil, err
	}

	var rows []model.RawBar
	names := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		rows = append(rows, f.Rows...)
		names = append(names, f.Name)
	}

	unlock := m.locks.lock(req.Schema + "." + req.Table)
	defer unlock()

	if err := m.store.EnsureBaseTable(ctx, req.Schema, req.Table, spec.Kind); err != nil {
		return nil, err
	}

	existing, err := m.store.ReadKeys(ctx, req.Schema, req.Table, spec.Kind)
	if err != nil {
		return nil, err
	}

	part, err := dedup.PartitionRows(rows, existing, spec.Kind)
	if err != nil {
		return nil, err
	}

	bars := make([]model.Bar, 0, len(part.New))
	for _, raw := range part.New {
		b, err := model.ParseBar(raw, spec.Kind)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	if err := m.store.AppendBars(ctx, req.Schema, req.Table, spec.Kind, bars); err != nil {
		return nil, err
	}

	res := &MergeResult{
		BatchID:              uuid.New(),
		Schema:               req.Schema,
		Table:                req.Table,
		CSVRowCount:          len(rows),
		Inserted:             len(part.New),
		Duplicates:           len(part.Duplicates),
		IntraBatchDuplicates: part.IntraBatch,
		SampleDuplicates:     part.DuplicateKeys,
	}
	if len(res.SampleDuplicates) > maxSampleDuplicates {
		res.SampleDuplicates = res.SampleDuplicates[:maxSampleDuplicates]
	}

	if m.audit != nil {
		entry := auditlog.Entry{
			Time:       time.Now(),
			BatchID:    res.BatchID,
			Schema:     req.Schema,
			Table:      req.Table,
			CSVRows:    res.CSVRowCount,
			Inserted:   res.Inserted,
			Duplicates: res.Duplicates,
			Files:      names,
		}
		if err := m.audit.Append(entry); err != nil {
			m.logger.Error("audit log append failed",
				"batch_id", res.BatchID, "error", err)
		}
	}

	m.logger.Info("merge complete",
		"batch_id", res.BatchID,
		"schema", req.Schema,
		"table", req.Table,
		"csv_rows", res.CSVRowCount,
		"inserted", res.Inserted,
		"duplicates", res.Duplicates,
		"intra_batch", res.IntraBatchDuplicates)

	return res, nil
}

// validate rejects a request before any database work and returns the spec
// of the targeted base table.
func (m *Merger) validate(req MergeRequest) (store.TableSpec, error) {
	var spec store.TableSpec

	if err := store.ValidateIdentifier(req.Schema); err != nil {
		return spec, validationf("schema: %v", err)
	}
	if err := store.ValidateIdentifier(req.Table); err != nil {
		return spec, validationf("table: %v", err)
	}

	spec, ok := store.BaseTables[req.Table]
	if !ok {
		return spec, validationf("table %q is not a merge destination", req.Table)
	}

	if len(req.Files) == 0 {
		return spec, validationf("no files in request")
	}

	for _, f := range req.Files {
		meta, err := ingest.ParseFilename(f.Name)
		if err != nil {
			return spec, validationf("file %q: %v", f.Name, err)
		}
		if err := checkFileTarget(meta, req.Schema, req.Table, spec); err != nil {
			return spec, validationf("file %q: %v", f.Name, err)
		}
	}

	return spec, nil
}

// checkFileTarget verifies one upload belongs to the requested destination.
func checkFileTarget(meta ingest.FileMeta, schema, table string, spec store.TableSpec) error {
	if !strings.HasPrefix(schema, meta.Symbol+"_") {
		return validationf("symbol %q does not match schema %q", meta.Symbol, schema)
	}
	if meta.TimeframeTag != model.SourceTag {
		return validationf("timeframe %q is not mergeable, base tables hold %s bars",
			meta.TimeframeTag, model.SourceTag)
	}

	switch {
	case spec.Kind == model.KindOption:
		if meta.OptionType != spec.ContractType {
			return validationf("%s upload cannot target %s table", meta.OptionType, spec.ContractType)
		}
	case table == "ib_vix_1min":
		if meta.OptionType != model.TypeStock {
			return validationf("%s upload cannot target the vix table", meta.OptionType)
		}
		if meta.Symbol != "vix" {
			return validationf("symbol %q cannot target the vix table", meta.Symbol)
		}
	default:
		if meta.OptionType != model.TypeStock {
			return validationf("%s upload cannot target a stock table", meta.OptionType)
		}
		if meta.Symbol == "vix" {
			return validationf("vix upload belongs in the ib_vix_1min table")
		}
	}
	return nil
}
