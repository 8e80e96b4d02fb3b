package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexisbeaulieu97/tokenhex/internal/report"
)

// Collectors holds the gauges describing one report.
type Collectors struct {
	Registry  *prometheus.Registry
	Tokens    *prometheus.GaugeVec
	Total     prometheus.Gauge
	LastRunTS prometheus.Gauge
}

// NewCollectors registers the tokenhex gauges on a fresh registry.
func NewCollectors() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		Tokens: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tokenhex_tokens",
			Help: "Color tokens in the last report by conversion status",
		}, []string{"status"}),
		Total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tokenhex_tokens_found",
			Help: "Color tokens found in the last report",
		}),
		LastRunTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tokenhex_last_run_timestamp_seconds",
			Help: "Unix time the last report was generated",
		}),
	}
	c.Registry.MustRegister(c.Tokens, c.Total, c.LastRunTS)
	return c
}

// Observe sets every gauge from rep.
func (c *Collectors) Observe(rep *report.Report) {
	c.Tokens.WithLabelValues(string(report.StatusSuccess)).Set(float64(rep.Summary.Successful))
	c.Tokens.WithLabelValues(string(report.StatusFailed)).Set(float64(rep.Summary.Failed))
	c.Total.Set(float64(rep.Summary.Total))
	c.LastRunTS.Set(float64(rep.Timestamp.Unix()))
}

// WriteTextfile writes rep in the node_exporter textfile format.
func WriteTextfile(path string, rep *report.Report) error {
	if rep == nil {
		return fmt.Errorf("report is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	c := NewCollectors()
	c.Observe(rep)
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
