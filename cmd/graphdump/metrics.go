package main

import (
	"context"
	"fmt"
	"os"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// metricsReader is a pull-based otel SDK reader: graphdump has no
// metrics backend to push to, so --metrics collects in-process
// counters on demand rather than exporting them periodically.
var metricsReader = sdkmetric.NewManualReader()

// buildMeterProvider wires a real otel SDK MeterProvider backed by
// metricsReader, the same WithReader wiring the hosting middleware's
// own metrics pipeline would use against a push exporter.
func buildMeterProvider() *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricsReader))
}

// printCollectedMetrics dumps graphcache's mutation/entity counters
// gathered through metricsReader. Called after a command runs when
// --metrics is set.
func printCollectedMetrics(ctx context.Context) error {
	var rm metricdata.ResourceMetrics
	if err := metricsReader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collecting graphcache metrics: %w", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			fmt.Fprintf(os.Stderr, "metric %s: %v\n", m.Name, m.Data)
		}
	}
	return nil
}
