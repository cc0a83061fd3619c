// Package metrics provides Prometheus metrics for the configurator
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every metric registered by this package
const Namespace = "polebom"

var (
	ComponentsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "components_finalized_total",
			Help:      "Total number of components finalized into a session",
		},
		[]string{"kind"},
	)

	LineItemsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "line_items_emitted_total",
			Help:      "Total number of line items generated for finalized components",
		},
		[]string{"kind"},
	)

	InvalidSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "invalid_selections_total",
			Help:      "Total number of selections rejected at finalization",
		},
		[]string{"kind"},
	)

	Aggregations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "aggregations_total",
			Help:      "Total number of pick lists aggregated",
		},
	)

	AggregationConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "aggregation_conflicts_total",
			Help:      "Total number of identifiers that failed to merge",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "Number of open configuration sessions",
		},
	)
)

// RecordFinalized counts one finalized component and its line items
func RecordFinalized(kind string, lineItems int) {
	ComponentsFinalized.WithLabelValues(kind).Inc()
	LineItemsEmitted.WithLabelValues(kind).Add(float64(lineItems))
}

// RecordInvalidSelection counts one rejected finalization
func RecordInvalidSelection(kind string) {
	InvalidSelections.WithLabelValues(kind).Inc()
}

// RecordAggregation counts one aggregation and any conflicts it hit
func RecordAggregation(conflicts int) {
	Aggregations.Inc()
	if conflicts > 0 {
		AggregationConflicts.Add(float64(conflicts))
	}
}

// Families gathers the polebom metric families from the gatherer
func Families(gatherer prometheus.Gatherer) ([]*dto.MetricFamily, error) {
	all, err := gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	out := make([]*dto.MetricFamily, 0, len(all))
	for _, mf := range all {
		if strings.HasPrefix(mf.GetName(), Namespace+"_") {
			out = append(out, mf)
		}
	}
	return out, nil
}

// WriteText writes the polebom metric families in text exposition format
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := Families(gatherer)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
