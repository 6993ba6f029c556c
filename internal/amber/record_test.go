package amber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSetLastValueWins(t *testing.T) {
	rec := NewRecord()
	rec.Set("Port_Number", "1")
	rec.Set("Speed_[Gb/s]", "200")
	rec.Set("Port_Number", "2")

	assert.Equal(t, []string{"Port_Number", "Speed_[Gb/s]"}, rec.Keys())
	assert.Equal(t, "2", rec.GetString("Port_Number"))
	assert.Equal(t, 2, rec.Len())
}

func TestRecordGetString(t *testing.T) {
	rec := NewRecord()
	rec.Set("present", "  value  ")
	rec.Set("blank", "   ")

	assert.Equal(t, "value", rec.GetString("present"))
	assert.Equal(t, "N/A", rec.GetString("blank"))
	assert.Equal(t, "N/A", rec.GetString("missing"))
	assert.Equal(t, "fallback", rec.GetStringDefault("missing", "fallback"))

	assert.True(t, rec.Has("blank"))
	assert.False(t, rec.Has("missing"))
}

func TestRecordFloat(t *testing.T) {
	rec := NewRecord()
	rec.Set("ber", "1.5e-9")
	rec.Set("zero", "0")
	rec.Set("junk", "not-a-number")
	rec.Set("blank", "")

	v := rec.Float("ber")
	require.NotNil(t, v)
	assert.InDelta(t, 1.5e-9, *v, 1e-18)

	z := rec.Float("zero")
	require.NotNil(t, z)
	assert.Zero(t, *z)

	assert.Nil(t, rec.Float("junk"))
	assert.Nil(t, rec.Float("blank"))
	assert.Nil(t, rec.Float("missing"))
}

func TestRecordInt(t *testing.T) {
	rec := NewRecord()
	rec.Set("downs", "42")
	rec.Set("float", "42.5")

	n := rec.Int("downs")
	require.NotNil(t, n)
	assert.Equal(t, int64(42), *n)
	assert.Nil(t, rec.Int("float"))
	assert.Nil(t, rec.Int("missing"))
}

func TestScientificString(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "N/A"},
		{"zero", f(0), "0"},
		{"small", f(1.5e-9), "1.50e-9"},
		{"mid range", f(3.3e-5), "3.30e-5"},
		{"large", f(2.34e+5), "2.34e+5"},
		{"negative", f(-3.2e-4), "-3.20e-4"},
		{"unity", f(1), "1.00e+0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScientificString(tc.in))
		})
	}
}
