package server

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"io"
	"sort"
	"time"
)

// serverMetrics collects command metrics in two forms: a VictoriaMetrics set that is
// exposed in the Prometheus text format, and go-metrics timers whose summary is
// logged when the server stops.
type serverMetrics struct {
	set      *metrics.Set
	registry gometrics.Registry
}

func newServerMetrics(activeConnections func() int) *serverMetrics {
	m := &serverMetrics{
		set:      metrics.NewSet(),
		registry: gometrics.NewRegistry(),
	}
	m.set.NewGauge("nkv_open_connections", func() float64 {
		return float64(activeConnections())
	})
	return m
}

// observe records one processed command
func (m *serverMetrics) observe(kind string, ok bool, took time.Duration) {
	status := "success"
	if !ok {
		status = "error"
	}
	m.set.GetOrCreateCounter(fmt.Sprintf(`nkv_commands_total{kind=%q,status=%q}`, kind, status)).Inc()
	m.set.GetOrCreateHistogram(fmt.Sprintf(`nkv_command_duration_seconds{kind=%q}`, kind)).Update(took.Seconds())
	gometrics.GetOrRegisterTimer("commands."+kind, m.registry).Update(took)
}

// invalid records a request that could not be decoded
func (m *serverMetrics) invalid() {
	m.set.GetOrCreateCounter("nkv_invalid_requests_total").Inc()
}

// rejected records a request that could not be read completely
func (m *serverMetrics) rejected() {
	m.set.GetOrCreateCounter("nkv_rejected_requests_total").Inc()
}

// writePrometheus writes all metrics in the Prometheus text format
func (m *serverMetrics) writePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}

// summary returns one line per command kind with count and latency figures
func (m *serverMetrics) summary() []string {
	var lines []string
	m.registry.Each(func(name string, i interface{}) {
		timer, ok := i.(gometrics.Timer)
		if !ok {
			return
		}
		snap := timer.Snapshot()
		lines = append(lines, fmt.Sprintf("%-22s count=%d mean=%s p99=%s max=%s",
			name,
			snap.Count(),
			time.Duration(snap.Mean()),
			time.Duration(snap.Percentile(0.99)),
			time.Duration(snap.Max()),
		))
	})
	sort.Strings(lines)
	return lines
}
