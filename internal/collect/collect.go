// Package collect drives the external vendor tooling that produces
// telemetry CSV files, and captures kernel logs alongside them. The core
// treats all of this purely as producers of parser-compatible input;
// failures are reported with guidance, never retried here.
package collect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/hostif"
	"example.com/amberlink/internal/logger"
)

// DefaultMstDir is where the vendor driver exposes its devices.
const DefaultMstDir = "/dev/mst"

// ErrAcquisition wraps failures of the external acquisition tooling.
var ErrAcquisition = errors.New("telemetry acquisition failed")

// Collector coordinates the vendor tooling collaborators.
type Collector struct {
	exec   vendorCli
	dmesg  dmesgCli
	mstDir string
	log    *logger.Logger
}

// New returns a collector backed by the real mlxlink/mst/dmesg commands.
func New(log *logger.Logger) *Collector {
	if log == nil {
		log = logger.New()
	}
	return &Collector{
		exec:   newVendorExec(),
		dmesg:  newDmesgExec(),
		mstDir: DefaultMstDir,
		log:    log,
	}
}

// Devices lists the vendor devices currently exposed by the driver,
// sorted. Empty when the driver is not running.
func (c *Collector) Devices() []string {
	entries, err := os.ReadDir(c.mstDir)
	if err != nil {
		return nil
	}
	var devices []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "mt") && strings.Contains(name, "pciconf") {
			devices = append(devices, filepath.Join(c.mstDir, name))
		}
	}
	sort.Strings(devices)
	return devices
}

// MstRunning reports whether the driver has any devices exposed.
func (c *Collector) MstRunning() bool {
	return len(c.Devices()) > 0
}

// StartMst starts the vendor driver and waits briefly for devices to
// appear.
func (c *Collector) StartMst() error {
	c.log.Infof("starting mst driver")
	if err := c.exec.MstStart(); err != nil {
		return fmt.Errorf("%w: mst start: %v", ErrAcquisition, err)
	}
	time.Sleep(2 * time.Second)
	return nil
}

// Collect acquires one telemetry CSV from the given device. The file is
// first written under a temporary name, then renamed to include the port
// label and, when resolvable through the interface mapping, the host
// interface name. Returns the final path.
func (c *Collector) Collect(device string, port int, outPrefix string, ifmap map[string]hostif.Interface) (string, error) {
	prefix := strings.TrimSuffix(outPrefix, ".csv")
	tempFile := prefix + "_temp.csv"

	c.log.Infof("collecting telemetry from %s (port %d)", device, port)
	if err := c.exec.AmberCollect(device, port, tempFile); err != nil {
		manual := fmt.Sprintf("mlxlink -d %s --amber_collect %s", device, outPrefix)
		if port > 0 {
			manual = fmt.Sprintf("mlxlink -d %s -p %d --amber_collect %s", device, port, outPrefix)
		}
		return "", fmt.Errorf("%w: %v (try running manually: %s)", ErrAcquisition, err, manual)
	}
	if _, err := os.Stat(tempFile); err != nil {
		return "", fmt.Errorf("%w: tool completed but output missing: %s", ErrAcquisition, tempFile)
	}

	parts := []string{prefix}
	if link := linkNameFromFile(tempFile); link != "" {
		parts = append(parts, link)
	}
	if iface := interfaceNameFromFile(tempFile, ifmap); iface != "" {
		parts = append(parts, iface)
	}
	finalFile := strings.Join(parts, "_") + ".csv"
	if finalFile != tempFile {
		if err := os.Rename(tempFile, finalFile); err != nil {
			return tempFile, nil
		}
	}
	c.log.Infof("telemetry saved to %s", finalFile)
	return finalFile, nil
}

// DeviceResult is the outcome of one device's acquisition attempt.
type DeviceResult struct {
	Device string
	Path   string
	Err    error
}

// CollectAll acquires telemetry from each device in turn. A failing device
// is logged and skipped so the remaining devices are still attempted; the
// caller inspects the results to decide whether the run as a whole failed.
func (c *Collector) CollectAll(devices []string, port int, outPrefix string, ifmap map[string]hostif.Interface) []DeviceResult {
	results := make([]DeviceResult, 0, len(devices))
	for _, dev := range devices {
		prefix := outPrefix
		if len(devices) > 1 {
			prefix = outPrefix + "_" + deviceLabel(dev)
		}
		path, err := c.Collect(dev, port, prefix, ifmap)
		if err != nil {
			c.log.Warningf("failed to collect from %s, continuing: %v", dev, err)
		}
		results = append(results, DeviceResult{Device: dev, Path: path, Err: err})
	}
	return results
}

// deviceLabel derives a filename-safe suffix from a device path, e.g.
// /dev/mst/mt4129_pciconf0 becomes mt41290.
func deviceLabel(device string) string {
	base := filepath.Base(device)
	base = strings.ReplaceAll(base, "pciconf", "")
	return strings.ReplaceAll(base, "_", "")
}

// linkNameFromFile derives a filename-safe port label from the first record.
func linkNameFromFile(path string) string {
	records, err := amber.ReadFile(path)
	if err != nil || len(records) == 0 {
		return ""
	}
	port := records[0].GetStringDefault("Port_Number", "")
	if port == "" {
		return ""
	}
	r := strings.NewReplacer("(", "_", ")", "", "/", "_", " ", "_")
	return r.Replace(port)
}

// interfaceNameFromFile resolves the first record's MAC through the host
// interface mapping.
func interfaceNameFromFile(path string, ifmap map[string]hostif.Interface) string {
	if len(ifmap) == 0 {
		return ""
	}
	records, err := amber.ReadFile(path)
	if err != nil || len(records) == 0 {
		return ""
	}
	mac, ok := amber.CanonicalMAC(records[0].GetStringDefault("MAC_Address", ""))
	if !ok {
		return ""
	}
	if info, found := ifmap[mac]; found {
		return info.Name
	}
	return ""
}
