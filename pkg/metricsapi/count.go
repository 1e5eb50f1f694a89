package metricsapi

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Count is a non-fractional metric. The API computes counts in Python and
// may serialize them as floats, so 5.0 decodes the same as 5.
type Count int

// Int returns c as an int
func (c Count) Int() int { return int(c) }

// UnmarshalJSON accepts integers and integral floats. null leaves c unchanged.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*c = Count(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("count %s is not a number", data)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return fmt.Errorf("count %s is not an integer", data)
	}
	*c = Count(f)
	return nil
}
