// Package telemetry provides OpenTelemetry initialization and helpers
// for distributed tracing across the CookMate service.
//
// The package configures OTLP HTTP export for traces, metrics and logs, with support for
// Grafana Cloud and local Tempo backends.
package telemetry
