// Package metrics exposes the runtime measurements of the service: Prometheus
// collectors fed by the round aggregator's lifecycle events, and point-in-time
// samples of process and host resource usage for /health and the monitor.
package metrics
