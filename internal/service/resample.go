package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/resample"
	"github.com/avelez/ohlc-data/internal/store"
)

// ResampleRequest rebuilds the resampled siblings of one 1-minute table.
// Kind is ignored when the table is a known base table.
type ResampleRequest struct {
	Schema     string
	Table      string
	Kind       model.InstrumentKind
	Timeframes []string
}

// TimeframeResult reports one target timeframe of a resample run. A failed
// timeframe carries Error and leaves its siblings untouched.
type TimeframeResult struct {
	Timeframe string `json:"timeframe"`
	Table     string `json:"table"`
	Candles   int    `json:"candles"`
	Error     string `json:"error,omitempty"`
}

// ResampleResult is the outcome of one resample request.
type ResampleResult struct {
	Schema     string            `json:"schema"`
	Table      string            `json:"table"`
	SourceRows int               `json:"source_rows"`
	Results    []TimeframeResult `json:"results"`
}

// Resampler rebuilds resampled tables from their 1-minute sources.
type Resampler struct {
	store  *store.Store
	locks  *destinationLocks
	logger *slog.Logger
}

// NewResampler creates a Resampler.
func NewResampler(st *store.Store, logger *slog.Logger) *Resampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resampler{
		store:  st,
		locks:  newDestinationLocks(),
		logger: logger,
	}
}

// Resample reads the source table once and rebuilds one destination per
// requested timeframe. Each destination is dropped and recreated under its
// own lock; a failure on one timeframe is recorded in its result entry and
// the remaining timeframes still run.
func (r *Resampler) Resample(ctx context.Context, req ResampleRequest) (*ResampleResult, error) {
	kind, err := r.validate(&req)
	if err != nil {
		return nil, err
	}

	src, err := r.store.ReadBars(ctx, req.Schema, req.Table, kind)
	if err != nil {
		return nil, err
	}

	res := &ResampleResult{
		Schema:     req.Schema,
		Table:      req.Table,
		SourceRows: len(src),
	}

	for _, tag := range req.Timeframes {
		entry := TimeframeResult{
			Timeframe: tag,
			Table:     store.ResampledName(req.Table, tag),
		}

		n, err := r.rebuild(ctx, req.Schema, entry.Table, kind, src, tag)
		if err != nil {
			entry.Error = err.Error()
			r.logger.Error("resample timeframe failed",
				"schema", req.Schema, "source", req.Table,
				"timeframe", tag, "error", err)
		} else {
			entry.Candles = n
			r.logger.Info("resample timeframe complete",
				"schema", req.Schema, "source", req.Table,
				"timeframe", tag, "destination", entry.Table,
				"candles", n)
		}
		res.Results = append(res.Results, entry)
	}

	return res, nil
}

// rebuild rolls the source up to one timeframe and replaces the destination,
// returning the candle count written.
func (r *Resampler) rebuild(ctx context.Context, schema, dest string, kind model.InstrumentKind, src []model.Bar, tag string) (int, error) {
	minutes, ok := model.Timeframes[tag]
	if !ok {
		return 0, validationf("unsupported timeframe %q", tag)
	}

	candles, err := resample.Resample(src, minutes, kind)
	if err != nil {
		return 0, err
	}

	unlock := r.locks.lock(schema + "." + dest)
	defer unlock()

	if err := r.store.RecreateResampledTable(ctx, schema, dest, kind); err != nil {
		return 0, err
	}
	if err := r.store.InsertCandles(ctx, schema, dest, kind, candles); err != nil {
		return 0, err
	}
	return len(candles), nil
}

// validate checks the request and resolves the source table's instrument
// kind. Known base tables dictate their kind regardless of the request.
func (r *Resampler) validate(req *ResampleRequest) (model.InstrumentKind, error) {
	if err := store.ValidateIdentifier(req.Schema); err != nil {
		return 0, validationf("schema: %v", err)
	}
	if err := store.ValidateIdentifier(req.Table); err != nil {
		return 0, validationf("table: %v", err)
	}
	if !strings.HasSuffix(req.Table, "_"+model.SourceTag) {
		return 0, validationf("table %q is not a %s source", req.Table, model.SourceTag)
	}
	if len(req.Timeframes) == 0 {
		return 0, validationf("no timeframes in request")
	}

	if spec, ok := store.BaseTables[req.Table]; ok {
		return spec.Kind, nil
	}
	return req.Kind, nil
}
