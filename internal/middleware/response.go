package middleware

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter wraps http.ResponseWriter to capture the status code and
// the number of bytes written.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode   atomic.Int32
	bytesWritten atomic.Int64
	wroteHeader  atomic.Bool
}

// NewResponseWriter creates a new ResponseWriter
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w}
	rw.statusCode.Store(http.StatusOK)
	return rw
}

// WriteHeader captures the status code
func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.wroteHeader.Swap(true) {
		return
	}
	rw.statusCode.Store(int32(code))
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the number of bytes written
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader.Store(true)
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten.Add(int64(n))
	return n, err
}

// StatusCode returns the captured status code
func (rw *ResponseWriter) StatusCode() int {
	return int(rw.statusCode.Load())
}

// BytesWritten returns the number of body bytes written
func (rw *ResponseWriter) BytesWritten() int64 {
	return rw.bytesWritten.Load()
}

// HeaderWritten reports whether the response has been committed
func (rw *ResponseWriter) HeaderWritten() bool {
	return rw.wroteHeader.Load()
}

// Unwrap exposes the underlying writer to http.ResponseController
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
