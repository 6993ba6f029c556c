// Package summarize orchestrates per-file report generation: pattern
// expansion, parsing, per-record composition and run accounting.
package summarize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/collect"
	"example.com/amberlink/internal/hostif"
	"example.com/amberlink/internal/report"
)

// ExpandPatterns resolves glob patterns to sorted file paths. Literal paths
// pass through untouched; wildcard patterns that match nothing are dropped
// so a stray pattern never turns into a bogus literal path.
func ExpandPatterns(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p)
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out
}

// EnsureInput creates a template CSV in place of a named input that does not
// exist, so the caller gets a populated reference file instead of an open
// error. Reports whether a template was created.
func EnsureInput(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := collect.WriteTemplate(path); err != nil {
		return false, fmt.Errorf("create template %s: %w", path, err)
	}
	return true, nil
}

// ProcessFile parses one telemetry file and writes a report per record to
// the sink. The interface mapping is shared read-only across files. The
// returned count is the number of records reported; a file with a header
// but no usable rows yields amber.ErrNoData.
func ProcessFile(path string, sink io.Writer, ifmap map[string]hostif.Interface) (int, error) {
	records, err := amber.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s: %w", path, amber.ErrNoData)
	}
	for i, rec := range records {
		s := report.Summarize(rec, ifmap, path, i, time.Now())
		if err := report.WriteText(sink, s); err != nil {
			return i, err
		}
	}
	return len(records), nil
}

// FileResult records the outcome for one processed input.
type FileResult struct {
	Path            string
	LogPath         string
	Rows            int
	TemplateCreated bool
	Err             error
}

// RunSummary accumulates per-file outcomes for the end-of-run report.
type RunSummary struct {
	Processed   []FileResult
	Templates   []FileResult
	NoData      []FileResult
	Errors      []FileResult
	Acquisition []string
	KernelLogs  []string
}

// Add files a result into the matching bucket. A freshly created template
// counts as a template regardless of its (empty) row outcome.
func (rs *RunSummary) Add(res FileResult) {
	switch {
	case res.TemplateCreated:
		rs.Templates = append(rs.Templates, res)
	case res.Err == nil:
		rs.Processed = append(rs.Processed, res)
	case errors.Is(res.Err, amber.ErrNoData):
		rs.NoData = append(rs.NoData, res)
	default:
		rs.Errors = append(rs.Errors, res)
	}
}

// AddAcquisitionFailure records a device whose telemetry collection failed.
// Acquisition failures are reported but do not fail the run by themselves;
// the caller decides what to do when nothing was collected at all.
func (rs *RunSummary) AddAcquisitionFailure(device string, err error) {
	rs.Acquisition = append(rs.Acquisition, fmt.Sprintf("%s: %v", device, err))
}

// AddKernelLog records a captured kernel log path.
func (rs *RunSummary) AddKernelLog(path string) {
	rs.KernelLogs = append(rs.KernelLogs, path)
}

// Failed reports whether any file ended in a hard error.
func (rs *RunSummary) Failed() bool {
	return len(rs.Errors) > 0
}

// WriteTo prints the processing summary block.
func (rs *RunSummary) WriteTo(w io.Writer) {
	banner := strings.Repeat("=", 80)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "PROCESSING SUMMARY")
	fmt.Fprintln(w, banner)

	if len(rs.Processed) > 0 {
		fmt.Fprintf(w, "Processed %d file(s) with data:\n", len(rs.Processed))
		for _, res := range rs.Processed {
			fmt.Fprintf(w, "  %s -> %s (%d row(s))\n", res.Path, res.LogPath, res.Rows)
		}
	}
	if len(rs.Templates) > 0 {
		fmt.Fprintf(w, "Created %d template file(s):\n", len(rs.Templates))
		for _, res := range rs.Templates {
			fmt.Fprintf(w, "  %s (template with headers only)\n", res.Path)
		}
		fmt.Fprintln(w, "  These are template files. Add data rows to generate detailed reports.")
	}
	if len(rs.NoData) > 0 {
		fmt.Fprintf(w, "%d file(s) had no usable data rows:\n", len(rs.NoData))
		for _, res := range rs.NoData {
			fmt.Fprintf(w, "  %s\n", res.Path)
		}
	}
	if len(rs.Errors) > 0 {
		fmt.Fprintf(w, "%d file(s) had errors:\n", len(rs.Errors))
		for _, res := range rs.Errors {
			fmt.Fprintf(w, "  %s: %v\n", res.Path, res.Err)
		}
	}
	if len(rs.Acquisition) > 0 {
		fmt.Fprintf(w, "%d device(s) failed telemetry collection:\n", len(rs.Acquisition))
		for _, entry := range rs.Acquisition {
			fmt.Fprintf(w, "  %s\n", entry)
		}
	}
	if len(rs.KernelLogs) > 0 {
		fmt.Fprintf(w, "Kernel messages captured in %d file(s):\n", len(rs.KernelLogs))
		for _, path := range rs.KernelLogs {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
	fmt.Fprintln(w, banner)
}
