package collect

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// vendorCli invokes the vendor firmware tooling. Injectable so collection
// logic is testable without hardware or the tools installed.
type vendorCli interface {
	AmberCollect(device string, port int, out string) error
	MstStart() error
}

// dmesgCli supplies raw kernel messages.
type dmesgCli interface {
	Messages() ([]byte, error)
}

func run(timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// vendorExec runs the real mlxlink and mst tools.
type vendorExec struct {
	collectTimeout time.Duration
	startTimeout   time.Duration
}

func newVendorExec() *vendorExec {
	return &vendorExec{
		collectTimeout: 2 * time.Minute,
		startTimeout:   30 * time.Second,
	}
}

func (e *vendorExec) AmberCollect(device string, port int, out string) error {
	args := []string{"-d", device}
	if port > 0 {
		args = append(args, "-p", strconv.Itoa(port))
	}
	args = append(args, "--amber_collect", out)
	_, err := run(e.collectTimeout, "mlxlink", args...)
	return err
}

func (e *vendorExec) MstStart() error {
	_, err := run(e.startTimeout, "mst", "start")
	return err
}

// dmesgExec runs dmesg with human-readable timestamps.
type dmesgExec struct {
	timeout time.Duration
}

func newDmesgExec() *dmesgExec {
	return &dmesgExec{timeout: 30 * time.Second}
}

func (e *dmesgExec) Messages() ([]byte, error) {
	return run(e.timeout, "dmesg", "-T")
}
