/*
Package monitoring provides metrics collection for the bridge.

# Overview

Prometheus collectors live on a private registry so tests and embedders can
create as many bridges as they like. Nothing is served over the network;
the registry is written to a node-exporter textfile on shutdown.

# Metrics

- hostbridge_dispatch_total{operation,status}
- hostbridge_dispatch_duration_seconds{operation}
- hostbridge_dispatch_failures_total{operation,kind}
- hostbridge_dispatch_in_flight (0 idle, 1 dispatching)

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "launchApp")
	result := router.Dispatch(ctx, "launchApp", args)
	timer.Stop(result)

	metrics.WriteTextfile("/var/lib/node_exporter/hostbridge.prom")
*/
package monitoring
