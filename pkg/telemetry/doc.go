// Package telemetry groups the observability building blocks.
//
//   - logging: structured slog setup (level, format, destination)
//   - metrics: Prometheus counters and histograms for validation,
//     schema loading, and reloads
//
// Components receive a *slog.Logger and an optional *metrics.Metrics;
// both are nil-tolerant so library consumers pay nothing for telemetry
// they do not configure.
package telemetry
