package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFlight(t *testing.T) {
	okBefore := testutil.ToFloat64(FlightsProcessed.WithLabelValues("ok"))
	fuelBefore := testutil.ToFloat64(FuelKg)
	directBefore := testutil.ToFloat64(CO2Kg.WithLabelValues("direct"))

	ObserveFlight(100, 316, 0)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(FlightsProcessed.WithLabelValues("ok")))
	assert.Equal(t, fuelBefore+100, testutil.ToFloat64(FuelKg))
	assert.Equal(t, directBefore+316, testutil.ToFloat64(CO2Kg.WithLabelValues("direct")))
}

func TestObserveCost_IgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(CarbonCostUSD.WithLabelValues("TEST_MKT"))
	ObserveCost("TEST_MKT", 0)
	ObserveCost("TEST_MKT", 12.5)
	assert.Equal(t, before+12.5, testutil.ToFloat64(CarbonCostUSD.WithLabelValues("TEST_MKT")))
}

func TestWriteTextfile(t *testing.T) {
	ObserveFailure()
	ObserveBatch(3, time.Now())

	path := filepath.Join(t.TempDir(), "emission.prom")
	require.NoError(t, WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.True(t, strings.Contains(out, "emission_flights_processed_total"))
	assert.True(t, strings.Contains(out, "emission_batch_rows 3"))
}
