package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readMetric collects a single metric from c and decodes it into its
// protobuf form.
func readMetric(c prometheus.Collector) (*dto.Metric, error) {
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	m := <-ch

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return nil, err
	}
	return pb, nil
}

// getCounterValue retrieves the current value of a CounterVec child for the
// given label values.
func getCounterValue(metric *prometheus.CounterVec, labels ...string) (float64, error) {
	pb, err := readMetric(metric.WithLabelValues(labels...))
	if err != nil {
		return 0, err
	}
	return pb.GetCounter().GetValue(), nil
}

// getHistogramCount retrieves the number of observations recorded by a
// histogram.
func getHistogramCount(metric prometheus.Histogram) (uint64, error) {
	pb, err := readMetric(metric)
	if err != nil {
		return 0, err
	}
	return pb.GetHistogram().GetSampleCount(), nil
}

// getGaugeValue retrieves the current value of a gauge.
func getGaugeValue(metric prometheus.Gauge) (float64, error) {
	pb, err := readMetric(metric)
	if err != nil {
		return 0, err
	}
	return pb.GetGauge().GetValue(), nil
}
