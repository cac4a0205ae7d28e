// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsCodec holds Prometheus metrics for the leaf file codec.
type metricsCodec struct {
	once sync.Once

	rowsRead    prometheus.Counter
	rowsSkipped prometheus.Counter
	rewrites    prometheus.Counter
	appends     prometheus.Counter
	writeErrors prometheus.Counter

	writeDuration prometheus.Histogram
}

var codecMetrics metricsCodec

func (m *metricsCodec) init() {
	m.once.Do(func() {
		m.rowsRead = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_codec_rows_read_total", Help: "Rows decoded from leaf files"})
		m.rowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_codec_rows_skipped_total", Help: "Rows skipped because they could not be decoded"})
		m.rewrites = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_codec_rewrites_total", Help: "Leaf files rewritten"})
		m.appends = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_codec_appends_total", Help: "Rows appended to leaf files"})
		m.writeErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_codec_write_errors_total", Help: "Failed rewrites and appends"})

		buckets := []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
		m.writeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "geotree_codec_write_seconds", Help: "Leaf file write duration", Buckets: buckets})

		prometheus.MustRegister(
			m.rowsRead, m.rowsSkipped, m.rewrites, m.appends, m.writeErrors,
			m.writeDuration,
		)
	})
}
