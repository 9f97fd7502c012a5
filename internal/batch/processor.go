package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/emission"
	"github.com/trailsync/emission-engine/internal/metrics"
	"github.com/trailsync/emission-engine/internal/model"
	"github.com/trailsync/emission-engine/internal/store"
	"github.com/trailsync/emission-engine/internal/trading"
)

// Totals aggregates every successful row of a batch.
type Totals struct {
	CO2Kg      float64             `json:"co2_kg"`
	FuelKg     float64             `json:"fuel_kg"`
	DistanceKm float64             `json:"distance_km"`
	CostUSD    decimal.NullDecimal `json:"cost_usd"` // valid only when priced
}

// Result is the outcome of one batch run.
type Result struct {
	RunID    string               `json:"run_id"`
	Rows     int                  `json:"rows"`
	Market   string               `json:"market,omitempty"` // empty when not priced
	Records  []model.FlightRecord `json:"records"`
	Failures []*RowError          `json:"-"`
	Totals   Totals               `json:"totals"`
}

// Priced reports whether rows carry a carbon cost.
func (r *Result) Priced() bool { return r.Market != "" }

// Succeeded returns the number of processed flights.
func (r *Result) Succeeded() int { return len(r.Records) }

// AverageEmissionFactor is the mean per-flight kg CO2/km, 0 for an empty batch.
func (r *Result) AverageEmissionFactor() float64 {
	if len(r.Records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range r.Records {
		sum += rec.Emission.EmissionFactor
	}
	return sum / float64(len(r.Records))
}

// AverageCostPerFlight is the mean carbon cost, invalid when not priced or empty.
func (r *Result) AverageCostPerFlight() decimal.NullDecimal {
	if !r.Totals.CostUSD.Valid || len(r.Records) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.Totals.CostUSD.Decimal.Div(decimal.NewFromInt(int64(len(r.Records)))))
}

// Processor folds CSV flight rows into emission records.
type Processor struct {
	calc       *emission.Calculator
	pricing    *trading.Calculator
	store      store.RecordStore
	logger     *slog.Logger
	onProgress ProgressFunc
}

// Option configures a Processor.
type Option func(*Processor)

// WithPricing adds a carbon cost column priced by c.
func WithPricing(c *trading.Calculator) Option {
	return func(p *Processor) { p.pricing = c }
}

// WithStore sets the sink for processed records.
func WithStore(s store.RecordStore) Option {
	return func(p *Processor) { p.store = s }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithProgress registers a callback invoked every ProgressInterval rows and
// after the last row.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.onProgress = fn }
}

// NewProcessor creates a processor that computes emissions with calc.
func NewProcessor(calc *emission.Calculator, opts ...Option) *Processor {
	p := &Processor{
		calc:   calc,
		store:  store.NewMemoryStore(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the record sink.
func (p *Processor) Store() store.RecordStore { return p.store }

// Process reads a CSV flight table from r. Row failures are collected in the
// result; only a missing table, an unreadable header, a missing required
// column or context cancellation return an error.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	if r == nil {
		return nil, ErrMissingInput
	}
	started := time.Now()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty table", ErrMissingInput)
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read header: %w", err)
	}
	h, err := newHeader(cols)
	if err != nil {
		return nil, err
	}

	records, err := readRows(cr, h)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:   uuid.New().String(),
		Rows:    len(records),
		Records: make([]model.FlightRecord, 0, len(records)),
	}
	if p.pricing != nil {
		res.Market = p.pricing.Market().ID
		res.Totals.CostUSD = decimal.NewNullDecimal(decimal.Zero)
	}
	log := p.logger.With("run_id", res.RunID)
	log.Info("batch started", "rows", res.Rows, "market", res.Market)

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := p.processRow(ctx, r, i)
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return res, err
			}
			res.Failures = append(res.Failures, rowErr)
			metrics.ObserveFailure()
			log.Warn("skipping flight row",
				"row", rowErr.Index,
				"line", rowErr.Line,
				"record_id", rowErr.RecordID,
				"callsign", rowErr.Callsign,
				"err", rowErr.Err,
			)
		} else {
			res.Records = append(res.Records, rec)
			res.Totals.CO2Kg += rec.Emission.CO2Total
			res.Totals.FuelKg += rec.Emission.FuelBurn
			res.Totals.DistanceKm += rec.Emission.FlightDistance
			if rec.CarbonCost.Valid {
				res.Totals.CostUSD.Decimal = res.Totals.CostUSD.Decimal.Add(rec.CarbonCost.Decimal)
			}
		}

		if n := i + 1; due(n, res.Rows) {
			prog := Progress{Processed: n, Succeeded: len(res.Records), Failed: len(res.Failures), Total: res.Rows}
			log.Info("batch progress", "processed", n, "total", res.Rows, "percent", fmt.Sprintf("%.1f", prog.Percent()))
			if p.onProgress != nil {
				p.onProgress(prog)
			}
		}
	}

	metrics.ObserveBatch(res.Rows, started)
	log.Info("batch finished",
		"succeeded", res.Succeeded(),
		"failed", len(res.Failures),
		"co2_t", res.Totals.CO2Kg/1000,
		"fuel_t", res.Totals.FuelKg/1000,
		"duration", time.Since(started),
	)
	return res, nil
}

// readRows tokenizes the data rows. A malformed record is kept as a row
// carrying its parse error so the fold can skip it; only read failures of
// the underlying stream are returned.
func readRows(cr *csv.Reader, h header) ([]row, error) {
	var rows []row
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rows = append(rows, row{h: h, line: perr.StartLine, err: fmt.Errorf("%w: %w", ErrInvalidRow, perr)})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("batch: read rows: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row{h: h, fields: fields, line: line})
	}
}

// processRow returns a *RowError for bad input; any other error is fatal.
func (p *Processor) processRow(ctx context.Context, r row, index int) (model.FlightRecord, error) {
	if r.err != nil {
		return model.FlightRecord{}, &RowError{Index: index, Line: r.line, Err: r.err}
	}
	f, err := parseFlight(r, index)
	if err != nil {
		return model.FlightRecord{}, &RowError{
			Index:    index,
			Line:     r.line,
			RecordID: f.recordID,
			Callsign: f.callsign,
			Err:      err,
		}
	}

	em := p.calc.FlightEmissions(f.track, nil, f.typeCode)
	rec := model.FlightRecord{
		RecordID: f.recordID,
		Callsign: f.callsign,
		ICAO24:   f.icao24,
		TypeCode: f.typeCode,
		Emission: em,
	}

	if p.pricing != nil {
		cost := p.pricing.FlightCarbonCost(em.CO2Total, em.FlightDistance, 0)
		rec.CarbonCost = decimal.NewNullDecimal(cost.CarbonCostTotal)
		rec.CarbonCostPerKm = decimal.NewNullDecimal(cost.CarbonCostPerKm)
		metrics.ObserveCost(cost.Market, cost.CarbonCostTotal.InexactFloat64())
	}

	if err := p.store.Append(ctx, rec); err != nil {
		return model.FlightRecord{}, fmt.Errorf("batch: store record %s: %w", rec.RecordID, err)
	}
	metrics.ObserveFlight(em.FuelBurn, em.CO2Direct, em.CO2Contrail)
	return rec, nil
}
