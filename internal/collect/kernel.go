package collect

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// CaptureKernelLog dumps the kernel ring buffer next to the given telemetry
// file as an opaque passthrough, and returns the log path. The output is
// not parsed beyond counting link-related lines for the log message.
func (c *Collector) CaptureKernelLog(telemetryFile string) (string, error) {
	logFile := strings.TrimSuffix(telemetryFile, ".csv") + "_kernel.log"

	out, err := c.dmesg.Messages()
	if err != nil {
		return "", fmt.Errorf("capture kernel messages: %w", err)
	}

	var b strings.Builder
	banner := strings.Repeat("=", 80)
	b.WriteString(banner + "\n")
	b.WriteString("Kernel Messages (dmesg) Capture\n")
	b.WriteString("Captured: " + time.Now().Format("2006-01-02 15:04:05.000") + "\n")
	b.WriteString(banner + "\n\n")
	b.Write(out)

	if err := os.WriteFile(logFile, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write kernel log: %w", err)
	}

	linkLines := 0
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "link") || strings.Contains(lower, "carrier") {
			linkLines++
		}
	}
	c.log.Infof("kernel messages captured to %s (%d link-related lines)", logFile, linkLines)
	return logFile, nil
}
