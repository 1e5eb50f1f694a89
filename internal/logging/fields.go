package logging

// Standard field names
const (
	FieldRequestID    = "req_id"
	FieldHTTPMethod   = "method"
	FieldHTTPPath     = "path"
	FieldHTTPStatus   = "status"
	FieldLatencyMs    = "latency_ms"
	FieldService      = "service"
	FieldVersion      = "version"
	FieldError        = "error"
	FieldResponseTime = "response_time_ms"
	FieldCheckName    = "check_name"
	FieldCheckStatus  = "check_status"
	FieldSection      = "section"
	FieldSession      = "session"
	FieldEndpoint     = "endpoint"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldPreset       = "preset"
	FieldRoute        = "route"
	FieldBytes        = "bytes"
)

// Log levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Health check statuses
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusOK        = "ok"
)
