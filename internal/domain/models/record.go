package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row returned by the inventory API: movement, report line or
// stock adjustment. Field values keep the types produced by JSON decoding.
type Record map[string]any

// Text returns the field formatted as text, or "" when absent.
func (r Record) Text(field string) string {
	value, ok := r[field]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Float returns the numeric value of a field. Numeric strings are accepted
// since the backend is not consistent about quoting quantities.
func (r Record) Float(field string) (float64, error) {
	value, ok := r[field]
	if !ok || value == nil {
		return 0, fmt.Errorf("field %s missing", field)
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return strconv.ParseFloat(fmt.Sprint(v), 64)
	}
}

// Location is an entry of the location dropdown on the movement history screen.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
