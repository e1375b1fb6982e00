package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "disaster_report"

// Metrics holds the Prometheus counters, histograms, and gauges for one report run.
type Metrics struct {
	RecordsLoaded     *prometheus.CounterVec // labels: source={census,fema}
	ReconcileSkips    *prometheus.CounterVec // labels: reason={unknown_code,no_population,unknown_name}
	IntegratedRecords prometheus.Gauge
	ReportRows        prometheus.Gauge

	StageDuration  *prometheus.HistogramVec // labels: stage={census,fema,integrate,report}
	ReportsWritten prometheus.Counter
	LastSuccess    prometheus.Gauge
}

var stageBuckets = []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

// NewMetrics creates and registers all report metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.ReconcileSkips,
		m.IntegratedRecords,
		m.ReportRows,
		m.StageDuration,
		m.ReportsWritten,
		m.LastSuccess,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Records read from each input source.",
		}, []string{"source"}),
		ReconcileSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_skips_total",
			Help:      "Keys dropped while joining population and disaster data, by reason.",
		}, []string{"reason"}),
		IntegratedRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "integrated_records",
			Help:      "Integrated records produced by the last run.",
		}),
		ReportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Rows in the last written report.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   stageBuckets,
		}, []string{"stage"}),
		ReportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Reports written to the output directory.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that finished without error.",
		}),
	}
}
