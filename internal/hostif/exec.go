package hostif

import (
	"context"
	"os/exec"
	"time"
)

// ipExec runs the real ip tool with a wall-clock timeout.
type ipExec struct {
	timeout time.Duration
}

func newIPExec(timeout time.Duration) *ipExec {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ipExec{timeout: timeout}
}

func (e *ipExec) LinkShow() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	return exec.CommandContext(ctx, "ip", "-o", "link").Output()
}
