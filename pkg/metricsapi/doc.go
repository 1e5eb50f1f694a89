// Package metricsapi is a typed client for the engineering metrics API.
//
// Endpoints are grouped by resource family: source code (/code), pipelines
// (/pipelines) and pull requests (/pull-requests). Every endpoint accepts a
// DateRange; empty bounds are not sent. Responses are decoded into the
// endpoint's record type without further transformation.
//
//	client, err := metricsapi.New(metricsapi.Config{BaseURL: "http://localhost:8000"})
//	if err != nil {
//		return err
//	}
//	pi, err := client.SourceCode().PairingIndex(ctx, metricsapi.DateRange{
//		StartDate: "2024-01-01",
//		EndDate:   "2024-06-30",
//	})
//
// A non-2xx answer yields *APIError, an unparsable body *DecodeError, and a
// network failure *TransportError. Each call makes a single attempt unless
// Config.Retry sets MaxRetries.
package metricsapi
