package amber

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPlaceholder is rendered wherever a field is missing or empty.
const DefaultPlaceholder = "N/A"

// Record is one telemetry sample row: an ordered mapping from column name to
// raw string value. The column set is whatever the source header declares;
// callers must not assume any particular key is present.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{values: make(map[string]string)}
}

// Set stores a value under key. A repeated key keeps its original position
// and takes the new value (last value wins for duplicate headers).
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the column names in source order.
func (r Record) Keys() []string {
	return r.keys
}

// Len reports the number of columns.
func (r Record) Len() int {
	return len(r.keys)
}

// Has reports whether the column exists, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Get returns the raw value for key.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the trimmed value for key, or "N/A" when the key is
// missing or its value trims to empty. It never fails.
func (r Record) GetString(key string) string {
	return r.GetStringDefault(key, DefaultPlaceholder)
}

// GetStringDefault is GetString with a caller-chosen fallback.
func (r Record) GetStringDefault(key, def string) string {
	v, ok := r.values[key]
	if !ok {
		return def
	}
	s := strings.TrimSpace(v)
	if s == "" {
		return def
	}
	return s
}

// Float parses the value for key as a float. Missing key, empty value or a
// parse failure all yield nil; nil is an explicit "absent", distinct from a
// parsed zero.
func (r Record) Float(key string) *float64 {
	s := r.GetStringDefault(key, "")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Int parses the value for key as an integer, nil on any failure.
func (r Record) Int(key string) *int64 {
	s := r.GetStringDefault(key, "")
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ScientificString renders an optional float as mantissa x 10^exponent with
// two decimal digits of mantissa and a signed exponent, e.g. "1.23e-08".
// nil renders as "N/A" and exactly zero as "0"; both cases are guarded before
// log10 is applied.
func ScientificString(v *float64) string {
	if v == nil {
		return DefaultPlaceholder
	}
	if *v == 0 {
		return "0"
	}
	exp := int(math.Floor(math.Log10(math.Abs(*v))))
	mant := *v / math.Pow(10, float64(exp))
	return fmt.Sprintf("%.2fe%+d", mant, exp)
}
