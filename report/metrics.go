package report

import (
	"github.com/YuminosukeSato/basketmine/mining"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Stats are the scalar results of one run.
type Stats struct {
	Rows         int     `json:"rows"`
	Dropped      int     `json:"dropped"`
	Transactions int     `json:"transactions"`
	Items        int     `json:"items"`
	MinSupport   float64 `json:"min_support"`
	Frequent     int     `json:"frequent"`
	Maximal      int     `json:"maximal"`
	Closed       int     `json:"closed"`
	DurationMs   int64   `json:"duration_ms"`
}

// NewRegistry returns a registry holding one gauge per Stats field, set to s.
func NewRegistry(s Stats) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "basketmine",
			Name:      name,
			Help:      help,
		})
		g.Set(v)
		reg.MustRegister(g)
	}
	gauge("transactions", "Number of grouped transactions mined.", float64(s.Transactions))
	gauge("items", "Number of distinct items in the vocabulary.", float64(s.Items))
	gauge("dropped_rows", "Number of input rows dropped while loading.", float64(s.Dropped))
	gauge("min_support", "Minimum support threshold of the run.", s.MinSupport)
	gauge("duration_milliseconds", "Wall time of the run in milliseconds.", float64(s.DurationMs))

	itemsets := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "basketmine",
		Name:      "itemsets",
		Help:      "Number of itemsets per family.",
	}, []string{"family"})
	itemsets.WithLabelValues(mining.FamilyFrequent).Set(float64(s.Frequent))
	itemsets.WithLabelValues(mining.FamilyMaximal).Set(float64(s.Maximal))
	itemsets.WithLabelValues(mining.FamilyClosed).Set(float64(s.Closed))
	reg.MustRegister(itemsets)

	return reg
}

// WriteMetrics writes s to path in the Prometheus textfile format, for
// node_exporter's textfile collector.
func WriteMetrics(path string, s Stats) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(s)); err != nil {
		return errors.Wrapf(err, "report: writing metrics to %s", path)
	}
	return nil
}
