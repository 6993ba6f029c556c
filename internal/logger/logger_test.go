package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWith(&buf)

	SetDebug(false)
	l.Debugf("hidden %d", 1)
	l.Infof("visible %d", 2)
	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "visible 2")

	buf.Reset()
	SetDebug(true)
	l.Debugf("now shown")
	assert.Contains(t, buf.String(), "now shown")
	SetDebug(false)
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWith(&buf).With("device", "mt4129_pciconf0")
	l.Warningf("slow collection")

	out := buf.String()
	assert.Contains(t, out, "device=mt4129_pciconf0")
	assert.Contains(t, out, "slow collection")
	assert.Contains(t, out, "level=WARN")
}
