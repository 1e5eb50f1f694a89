package metricsapi

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Query parameter names understood by the metrics API
const (
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamTop       = "top"
	ParamTopN      = "top_n"
)

// Params is an ordered set of query parameters.
// Keys keep the position of their first Set; nil values are never encoded.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams creates an empty parameter set
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Set assigns a value to a key. A nil value or nil pointer marks the key absent.
func (p *Params) Set(key string, value any) *Params {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Merge copies every key of other into p, in other's order
func (p *Params) Merge(other *Params) *Params {
	if other == nil {
		return p
	}
	for _, k := range other.keys {
		p.Set(k, other.values[k])
	}
	return p
}

// Len returns the number of keys that would be encoded
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, k := range p.keys {
		if _, ok := scalar(p.values[k]); ok {
			n++
		}
	}
	return n
}

// Encode serializes the parameters as a URL query string without the leading '?'
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range p.keys {
		s, ok := scalar(p.values[k])
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
	}
	return b.String()
}

// scalar stringifies v, dereferencing pointers. It reports false for nil.
func scalar(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return fmt.Sprint(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprint(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return fmt.Sprint(rv.Float()), true
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}
