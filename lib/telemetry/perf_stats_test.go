package telemetry

import (
	"context"
	"os"
	"testing"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestPerfGaugesRecord(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(ctx)

	gauges, err := newPerfGauges(provider.Meter("test"))
	require.NoError(t, err)
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	require.NoError(t, err)

	gauges.record(ctx, proc)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &collected))
	require.Len(t, collected.ScopeMetrics, 1)

	values := map[string]metricdata.Aggregation{}
	for _, m := range collected.ScopeMetrics[0].Metrics {
		values[m.Name] = m.Data
	}
	for _, name := range []string{"process.cpu.percent", "process.memory.rss", "go.heap.alloc", "go.goroutines"} {
		require.Contains(t, values, name)
	}

	rss, ok := values["process.memory.rss"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, rss.DataPoints, 1)
	require.Positive(t, rss.DataPoints[0].Value)

	goroutines, ok := values["go.goroutines"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Positive(t, goroutines.DataPoints[0].Value)
}
