// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsIngestion holds Prometheus metrics for the loader.
type metricsIngestion struct {
	once sync.Once

	filesRead       prometheus.Counter
	rowsLoaded      prometheus.Counter
	rowsSkipped     prometheus.Counter
	subtreesSkipped prometheus.Counter

	loadDuration prometheus.Histogram
}

var ingMetrics metricsIngestion

func (m *metricsIngestion) init() {
	m.once.Do(func() {
		m.filesRead = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_load_files_total", Help: "Leaf files read by the loader"})
		m.rowsLoaded = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_load_rows_total", Help: "Records loaded into the collection"})
		m.rowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_load_rows_skipped_total", Help: "Corrupt rows skipped while loading"})
		m.subtreesSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "geotree_load_subtrees_skipped_total", Help: "Directories that could not be traversed"})

		buckets := []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
		m.loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "geotree_load_seconds", Help: "Full tree load duration", Buckets: buckets})

		prometheus.MustRegister(
			m.filesRead, m.rowsLoaded, m.rowsSkipped, m.subtreesSkipped,
			m.loadDuration,
		)
	})
}
