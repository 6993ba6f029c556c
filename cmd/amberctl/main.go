package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/collect"
	"example.com/amberlink/internal/hostif"
	"example.com/amberlink/internal/logger"
	"example.com/amberlink/internal/report"
	"example.com/amberlink/internal/summarize"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

type options struct {
	Collect     string `long:"collect" optional:"yes" optional-value:"all" value-name:"DEVICE" description:"Collect telemetry from a device before summarizing (or 'all')"`
	Port        int    `short:"p" long:"port" description:"Port number passed to the collection tool"`
	Output      string `short:"o" long:"output" default:"amber_telemetry" value-name:"PREFIX" description:"Output file prefix for collected telemetry"`
	PDF         bool   `long:"pdf" description:"Also render a PDF report per telemetry row"`
	NoKernelLog bool   `long:"no-kernel-log" description:"Skip kernel message capture after collection"`
	Template    string `long:"template" value-name:"PATH" description:"Write a template CSV with the expected column set and exit"`
	Debug       bool   `short:"d" long:"debug" description:"Enable debug logging"`
	Version     bool   `short:"v" long:"version" description:"Print version and exit"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"Telemetry CSV files or glob patterns"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] [FILE ...]"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	if opts.Version {
		fmt.Printf("amberctl %s (built %s)\n", version, buildDate)
		return 0
	}

	logger.SetDebug(opts.Debug)
	log := logger.New()

	if opts.Template != "" {
		if err := collect.WriteTemplate(opts.Template); err != nil {
			log.Errorf("write template: %v", err)
			return 1
		}
		log.Infof("template written to %s", opts.Template)
		if len(opts.Args.Files) == 0 && opts.Collect == "" {
			return 0
		}
	}

	ifmap := hostif.NewResolver(5 * time.Second).Resolve()
	log.Debugf("resolved %d host interface(s)", len(ifmap))

	var rs summarize.RunSummary
	files := opts.Args.Files

	if opts.Collect != "" {
		collected, ok := collectTelemetry(opts, ifmap, &rs, log)
		if !ok {
			return 1
		}
		files = append(files, collected...)
	}

	files = summarize.ExpandPatterns(files)
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no input files; pass telemetry CSV files or use --collect")
		return 1
	}

	for _, path := range files {
		res := processOne(path, ifmap, opts.PDF, log)
		rs.Add(res)
	}

	rs.WriteTo(os.Stdout)
	if rs.Failed() {
		return 1
	}
	return 0
}

// collectTelemetry drives the vendor tooling for one device or every device
// the driver exposes, and captures the kernel ring buffer next to each
// collected file.
func collectTelemetry(opts options, ifmap map[string]hostif.Interface, rs *summarize.RunSummary, log *logger.Logger) ([]string, bool) {
	c := collect.New(log)
	if !c.MstRunning() {
		if err := c.StartMst(); err != nil {
			log.Errorf("%v", err)
			return nil, false
		}
	}

	var devices []string
	if opts.Collect == "all" {
		devices = c.Devices()
		if len(devices) == 0 {
			log.Errorf("no devices found under %s; is the driver loaded?", collect.DefaultMstDir)
			return nil, false
		}
	} else {
		devices = []string{opts.Collect}
	}

	var collected []string
	for _, res := range c.CollectAll(devices, opts.Port, opts.Output, ifmap) {
		if res.Err != nil {
			rs.AddAcquisitionFailure(res.Device, res.Err)
			continue
		}
		collected = append(collected, res.Path)
		if !opts.NoKernelLog {
			if logPath, err := c.CaptureKernelLog(res.Path); err != nil {
				log.Warningf("%v", err)
			} else {
				rs.AddKernelLog(logPath)
			}
		}
	}
	if len(collected) == 0 {
		log.Errorf("failed to collect telemetry from any device")
		return nil, false
	}
	return collected, true
}

// processOne writes the per-record reports for a single file to stdout and a
// sibling .log file, plus per-row PDFs when requested. A named input that
// does not exist gets a template CSV created in its place instead of an open
// error.
func processOne(path string, ifmap map[string]hostif.Interface, pdf bool, log *logger.Logger) summarize.FileResult {
	res := summarize.FileResult{Path: path}
	res.LogPath = strings.TrimSuffix(path, ".csv") + ".log"

	created, err := summarize.EnsureInput(path)
	if err != nil {
		res.Err = err
		return res
	}
	if created {
		log.Infof("%s did not exist; created a template CSV with the expected column headers", path)
		res.TemplateCreated = true
		return res
	}

	f, err := os.Create(res.LogPath)
	if err != nil {
		res.Err = fmt.Errorf("create %s: %w", res.LogPath, err)
		return res
	}
	defer f.Close()

	sink := io.MultiWriter(os.Stdout, f)
	res.Rows, res.Err = summarize.ProcessFile(path, sink, ifmap)
	if res.Err != nil || !pdf {
		return res
	}

	if err := writePDFs(path, ifmap, log); err != nil {
		log.Warningf("pdf: %v", err)
	}
	return res
}

func writePDFs(path string, ifmap map[string]hostif.Interface, log *logger.Logger) error {
	records, err := amber.ReadFile(path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(path, ".csv")
	now := time.Now()
	for i, rec := range records {
		out := fmt.Sprintf("%s_row%d.pdf", base, i)
		s := report.Summarize(rec, ifmap, path, i, now)
		if err := report.SavePDF(s, out); err != nil {
			return fmt.Errorf("%s: %w", out, err)
		}
		log.Infof("pdf report written to %s", out)
	}
	return nil
}
