package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsync/emission-engine/internal/emission"
	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/trading"
)

const sampleCSV = `record_id,callsign,icao24,typecode,latitude_1,longitude_1,latitude_2,longitude_2,altitude_1,altitude_2,avg_ground_speed_ms
r1,UAL1,a1b2c3,A320,34.0,-118.0,35.0,-117.5,10000,10000,230
r2,DAL2,abc123,,0,0,0,1,,,
r3,BAD3,def456,B737,not-a-number,0,0,1,,,
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newProcessor(t *testing.T, opts ...Option) *Processor {
	t.Helper()
	calc, err := emission.NewCalculator(emission.DefaultPixelSizeKm, emission.DefaultContrailHours)
	require.NoError(t, err)
	return NewProcessor(calc, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestProcess_FoldsRowsAndSkipsFailures(t *testing.T) {
	p := newProcessor(t)

	res, err := p.Process(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Rows)
	require.Equal(t, 2, res.Succeeded())
	require.Len(t, res.Failures, 1)
	assert.False(t, res.Priced())

	r1 := res.Records[0]
	assert.Equal(t, "r1", r1.RecordID)
	assert.Equal(t, "A320", r1.TypeCode)
	assert.InEpsilon(t, 260.6737, r1.Emission.FuelBurn, 1e-4)
	assert.InEpsilon(t, 823.7288, r1.Emission.CO2Direct, 1e-4)
	assert.False(t, r1.CarbonCost.Valid)

	r2 := res.Records[1]
	assert.Equal(t, "default", r2.TypeCode)
	// altitude defaults to 0 and speed to 230 m/s
	assert.InEpsilon(t, r2.Emission.FlightDistance*3.0*1.10*1.02, r2.Emission.FuelBurn, 1e-12)

	assert.InDelta(t, r1.Emission.CO2Total+r2.Emission.CO2Total, res.Totals.CO2Kg, 1e-9)
	assert.InDelta(t, r1.Emission.FuelBurn+r2.Emission.FuelBurn, res.Totals.FuelKg, 1e-9)
	assert.False(t, res.Totals.CostUSD.Valid)

	fail := res.Failures[0]
	assert.Equal(t, 2, fail.Index)
	assert.Equal(t, 4, fail.Line)
	assert.Equal(t, "r3", fail.RecordID)
	assert.Equal(t, "BAD3", fail.Callsign)
	assert.ErrorIs(t, fail, ErrInvalidRow)

	assert.Equal(t, 2, p.Store().Len())
}

func TestProcess_LogsSkippedRow(t *testing.T) {
	var buf bytes.Buffer
	p := newProcessor(t, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := p.Process(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "skipping flight row")
	assert.Contains(t, out, `"record_id":"r3"`)
	assert.Contains(t, out, "batch finished")
}

func TestProcess_Priced(t *testing.T) {
	p := newProcessor(t, WithPricing(trading.NewCalculator(market.EUETS)))

	res, err := p.Process(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.True(t, res.Priced())
	assert.Equal(t, market.EUETS, res.Market)

	var sum decimal.Decimal
	for _, rec := range res.Records {
		require.True(t, rec.CarbonCost.Valid)
		require.True(t, rec.CarbonCostPerKm.Valid)
		want := decimal.NewFromFloat(rec.Emission.CO2Total).Div(decimal.NewFromInt(1000)).Mul(decimal.NewFromInt(95))
		assert.True(t, rec.CarbonCost.Decimal.Equal(want), "cost %s want %s", rec.CarbonCost.Decimal, want)
		sum = sum.Add(rec.CarbonCost.Decimal)
	}
	require.True(t, res.Totals.CostUSD.Valid)
	assert.True(t, res.Totals.CostUSD.Decimal.Equal(sum))

	avg := res.AverageCostPerFlight()
	require.True(t, avg.Valid)
	assert.True(t, avg.Decimal.Equal(sum.Div(decimal.NewFromInt(2))))
}

func TestProcess_NullTypecodeAndDefaults(t *testing.T) {
	in := "latitude_1,longitude_1,latitude_2,longitude_2,typecode\n0,0,0,1,nan\n"
	res, err := newProcessor(t).Process(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "default", rec.TypeCode)
	assert.Equal(t, DefaultCallsign, rec.Callsign)
	assert.Equal(t, "0", rec.RecordID)
	assert.Equal(t, "", rec.ICAO24)
}

func TestProcess_FatalInputs(t *testing.T) {
	p := newProcessor(t)
	ctx := context.Background()

	_, err := p.Process(ctx, nil)
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = p.Process(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = p.Process(ctx, strings.NewReader("latitude_1,longitude_1,latitude_2\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestProcess_RowErrors(t *testing.T) {
	in := strings.Join([]string{
		"latitude_1,longitude_1,latitude_2,longitude_2,altitude_1,avg_ground_speed_ms",
		",0,0,1,,",         // missing latitude_1
		"0,0,0,1,high,",    // bad altitude
		"0,0,0,1,,fast",    // bad speed
		"95,0,0,1,,",       // latitude out of range
		"0,0",              // short row
		"0,0,0,1,9500,250", // ok
	}, "\n")

	res, err := newProcessor(t).Process(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded())
	assert.Len(t, res.Failures, 5)
	for _, f := range res.Failures {
		assert.ErrorIs(t, f, ErrInvalidRow)
	}
}

func TestProcess_MalformedQuoteSkipsOnlyThatRow(t *testing.T) {
	in := `record_id,callsign,latitude_1,longitude_1,latitude_2,longitude_2
r1,UAL1,0,0,0,1
r2,BAD"QUOTE,0,0,0,1
r3,DAL3,0,1,0,2
`
	res, err := newProcessor(t).Process(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	require.Equal(t, 2, res.Succeeded())
	assert.Equal(t, "r1", res.Records[0].RecordID)
	assert.Equal(t, "r3", res.Records[1].RecordID)

	require.Len(t, res.Failures, 1)
	fail := res.Failures[0]
	assert.Equal(t, 1, fail.Index)
	assert.Equal(t, 3, fail.Line)
	assert.ErrorIs(t, fail, ErrInvalidRow)
	var perr *csv.ParseError
	assert.ErrorAs(t, fail, &perr)
}

func TestProcess_Progress(t *testing.T) {
	var b strings.Builder
	b.WriteString("latitude_1,longitude_1,latitude_2,longitude_2\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "0,%d,0,%d\n", i, i+1)
	}

	var seen []Progress
	p := newProcessor(t, WithProgress(func(pr Progress) { seen = append(seen, pr) }))
	_, err := p.Process(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, 10, seen[0].Processed)
	assert.Equal(t, 20, seen[1].Processed)
	assert.Equal(t, 25, seen[2].Processed)
	assert.Equal(t, 100.0, seen[2].Percent())
	assert.InDelta(t, 40.0, seen[0].Percent(), 1e-12)
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProcessor(t).Process(ctx, strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopEmittersFromStore(t *testing.T) {
	p := newProcessor(t)
	_, err := p.Process(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	top, err := p.Store().TopEmitters(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "r2", top[0].RecordID)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "flights.csv")
	out := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(in, []byte(sampleCSV), 0o600))

	p := newProcessor(t, WithPricing(trading.NewCalculator(market.CORSIA)))
	res, err := p.ProcessFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, append(append([]string{}, OutputColumns...), CostColumns...), rows[0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, "A320", rows[1][3])
	assert.Len(t, rows[1], len(OutputColumns)+len(CostColumns))
}

func TestProcessFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := newProcessor(t).ProcessFile(context.Background(), filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestWriteCSV_Unpriced(t *testing.T) {
	res, err := newProcessor(t).Process(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(OutputColumns, ","), lines[0])
}
