package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const DEFAULT_PERF_INTERVAL = 30 * time.Second

type perfGauges struct {
	cpu        metric.Float64Gauge
	rss        metric.Int64Gauge
	heap       metric.Int64Gauge
	goroutines metric.Int64Gauge
}

func newPerfGauges(meter metric.Meter) (perfGauges, error) {
	var g perfGauges
	var err error
	g.cpu, err = meter.Float64Gauge("process.cpu.percent", metric.WithUnit("%"))
	if err != nil {
		return perfGauges{}, err
	}
	g.rss, err = meter.Int64Gauge("process.memory.rss", metric.WithUnit("By"))
	if err != nil {
		return perfGauges{}, err
	}
	g.heap, err = meter.Int64Gauge("go.heap.alloc", metric.WithUnit("By"))
	if err != nil {
		return perfGauges{}, err
	}
	g.goroutines, err = meter.Int64Gauge("go.goroutines")
	if err != nil {
		return perfGauges{}, err
	}
	return g, nil
}

// record samples the cpu and memory usage of proc and the go runtime once.
// cpu usage is measured since the previous call on the same proc.
func (g perfGauges) record(ctx context.Context, proc *process.Process) {
	cpuPercent, err := proc.PercentWithContext(ctx, 0)
	if err != nil {
		slog.WarnContext(ctx, "read process cpu usage", "err", err)
	} else {
		g.cpu.Record(ctx, cpuPercent)
	}

	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		slog.WarnContext(ctx, "read process memory usage", "err", err)
	} else {
		g.rss.Record(ctx, int64(mem.RSS))
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	g.heap.Record(ctx, int64(memStats.HeapAlloc))
	g.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}

// InstrumentPerfStats records the server's cpu and memory gauges on the
// global meter provider every `interval` until ctx is done.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	gauges, err := newPerfGauges(otel.Meter("diya-backend/perf_stats"))
	if err != nil {
		slog.WarnContext(ctx, "create perf stats gauges", "err", err)
		return
	}
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		slog.WarnContext(ctx, "open current process", "err", err)
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gauges.record(ctx, proc)
			case <-ctx.Done():
				return
			}
		}
	}()
}
