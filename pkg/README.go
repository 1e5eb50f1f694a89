// Package pkg holds the public libraries of goMetricsDashboard:
//   - metricsapi: typed client for the engineering metrics API
//   - errors: client-facing error type with HTTP status mapping
//
// Example usage:
//
//	import "github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
//
//	client, err := metricsapi.New(metricsapi.Config{BaseURL: "http://localhost:8000"})
//	summary, err := client.Pipelines().Summary(ctx, metricsapi.DateRange{StartDate: "2024-01-01"})
package pkg
