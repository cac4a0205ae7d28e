// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// writeMetrics dumps the default registry in text exposition format, for
// the node_exporter textfile collector or a later scrape.
func writeMetrics(path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		logger.Warn("metrics.write.error", "path", path, "err", err)
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	logger.Debug("metrics.write", "path", path)
	return nil
}
