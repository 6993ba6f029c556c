// Package report assembles normalized telemetry fields, resolved host
// interface state, the health verdict and histogram summary into an
// ordered, sectioned link-health report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/fec"
	"example.com/amberlink/internal/health"
	"example.com/amberlink/internal/hostif"
)

const banner = "================================================================================"

// Summary is the fully resolved view of one telemetry record, ready for
// rendering. Built once per record and never mutated after emission.
type Summary struct {
	File        string
	Row         int
	GeneratedAt time.Time

	Record amber.Record

	Port        string
	MACHex      string
	MAC         string
	HostIf      string
	HostIfState string
	Protocol    string
	Speed       string
	ActiveFEC   string

	LinkDown       string
	LinkDownGBHost string
	LinkDownGBLine string
	TimeSinceClear string

	RawBERStr   string
	EffBERStr   string
	RawBER      *float64
	EffBER      *float64
	RawBERLanes [4]string
	SNRMedia    [4]string
	SNRHost     [4]string

	CablePN     string
	CableSN     string
	CableTech   string
	CableType   string
	Vendor      string
	CableLength string
	ModuleTemp  string
	ModuleVolt  string

	SuccRecovery   string
	TotalRecovery  string
	UnintentDown   string
	IntentDown     string
	DownBlame      string
	LastDownReason string

	Hist    fec.Histogram
	Verdict health.Verdict
}

// Summarize resolves one record against the host interface mapping. The
// mapping is consumed read-only; lookups depend only on the record's MAC.
func Summarize(rec amber.Record, ifmap map[string]hostif.Interface, file string, row int, now time.Time) Summary {
	s := Summary{
		File:        file,
		Row:         row,
		GeneratedAt: now,
		Record:      rec,

		Port:      rec.GetString("Port_Number"),
		MACHex:    rec.GetString("MAC_Address"),
		Protocol:  rec.GetString("Protocol"),
		Speed:     rec.GetString("Speed_[Gb/s]"),
		ActiveFEC: rec.GetString("Active_FEC"),

		LinkDown:       rec.GetString("Link_Down"),
		LinkDownGBHost: rec.GetString("Link_Down_GB_host"),
		LinkDownGBLine: rec.GetString("Link_Down_GB_line"),
		TimeSinceClear: rec.GetString("Time_since_last_clear_[Min]"),

		RawBERStr: rec.GetString("Raw_BER"),
		EffBERStr: rec.GetString("Effective_BER"),
		RawBER:    rec.Float("Raw_BER"),
		EffBER:    rec.Float("Effective_BER"),

		CablePN:     rec.GetString("Cable_PN"),
		CableSN:     rec.GetString("Cable_SN"),
		CableTech:   rec.GetString("cable_technology"),
		CableType:   rec.GetString("cable_type"),
		CableLength: rec.GetString("cable_length"),
		ModuleTemp:  rec.GetString("Module_Temperature"),
		ModuleVolt:  rec.GetString("Module_Voltage"),

		SuccRecovery:   rec.GetString("successful_recovery_events"),
		TotalRecovery:  rec.GetString("total_successful_recovery_events"),
		UnintentDown:   rec.GetString("unintentional_link_down_events"),
		IntentDown:     rec.GetString("intentional_link_down_events"),
		DownBlame:      rec.GetString("down_blame"),
		LastDownReason: rec.GetString("local_reason_opcode"),

		Hist: fec.HistogramFromRecord(rec),
	}

	s.MAC = amber.DefaultPlaceholder
	if mac, ok := amber.CanonicalMAC(s.MACHex); ok {
		s.MAC = mac
	}

	s.HostIf = amber.DefaultPlaceholder
	s.HostIfState = amber.DefaultPlaceholder
	if s.MAC != amber.DefaultPlaceholder {
		if info, ok := ifmap[strings.ToLower(s.MAC)]; ok {
			s.HostIf = info.Name
			s.HostIfState = info.OperState
		}
	}

	for i := 0; i < 4; i++ {
		s.RawBERLanes[i] = rec.GetString(fmt.Sprintf("Raw_BER_lane%d", i))
		s.SNRMedia[i] = rec.GetString(fmt.Sprintf("snr_media_lane%d", i))
		s.SNRHost[i] = rec.GetString(fmt.Sprintf("snr_host_lane%d", i))
	}

	// cable_vendor takes priority over vendor_name when both are present.
	s.Vendor = rec.GetString("cable_vendor")
	if s.Vendor == amber.DefaultPlaceholder {
		s.Vendor = rec.GetString("vendor_name")
	}

	s.Verdict = health.Classify(s.RawBER, s.EffBER)
	return s
}

// Headline renders the single-line grep-friendly digest with fixed
// KEY=value tokens. Token order is part of the output contract.
func (s *Summary) Headline() string {
	return fmt.Sprintf(
		"PORT=%s IF=%s IF_STATE=%s MAC=%s SPEED=%sG LINK_DOWNS=%s RAW_BER=%s EFF_BER=%s VERDICT='%s'",
		s.Port, s.HostIf, s.HostIfState, s.MAC, s.Speed, s.LinkDown,
		amber.ScientificString(s.RawBER), amber.ScientificString(s.EffBER),
		s.Verdict.Advice(),
	)
}

// HeadlineRecord is the machine-readable form of the headline digest.
type HeadlineRecord struct {
	File           string `json:"file,omitempty"`
	Row            int    `json:"row"`
	Port           string `json:"port"`
	Interface      string `json:"interface"`
	InterfaceState string `json:"interfaceState"`
	MAC            string `json:"mac"`
	Speed          string `json:"speed"`
	LinkDowns      string `json:"linkDowns"`
	RawBER         string `json:"rawBER"`
	EffectiveBER   string `json:"effectiveBER"`
	Verdict        string `json:"verdict"`
}

// ToHeadlineRecord builds the NDJSON-friendly digest object.
func (s *Summary) ToHeadlineRecord() HeadlineRecord {
	return HeadlineRecord{
		File:           s.File,
		Row:            s.Row,
		Port:           s.Port,
		Interface:      s.HostIf,
		InterfaceState: s.HostIfState,
		MAC:            s.MAC,
		Speed:          s.Speed,
		LinkDowns:      s.LinkDown,
		RawBER:         amber.ScientificString(s.RawBER),
		EffectiveBER:   amber.ScientificString(s.EffBER),
		Verdict:        s.Verdict.String(),
	}
}

// WriteText emits the full sectioned report. Sections are always present,
// in fixed order, with "N/A" placeholders where data is absent; downstream
// tooling greps for the section markers.
func WriteText(w io.Writer, s Summary) error {
	lw := &lineWriter{w: w}

	lw.line(banner)
	lw.line("amBER Link Health Report")
	lw.linef("Generated: %s", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	lw.linef("File: %s", s.File)
	lw.linef("Row: %d", s.Row)
	lw.line(banner)

	writeLinkSection(lw, s)
	writeBERSection(lw, s)
	writeSNRSection(lw, s)
	writeCableSection(lw, s)
	writeEventsSection(lw, s)
	writeVerdictSection(lw, s)
	writeHeadlineSection(lw, s)
	writeStatsSection(lw, s)
	writeRawFieldsSection(lw, s)

	lw.line("")
	return lw.err
}

type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\n")
}

func (lw *lineWriter) linef(format string, args ...interface{}) {
	lw.line(fmt.Sprintf(format, args...))
}

func writeLinkSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line("[Link / Protocol]")
	lw.linef("  Port                        : %s", s.Port)
	lw.linef("  MAC Address (amBER)         : %s", s.MACHex)
	lw.linef("  MAC Address (parsed)        : %s", s.MAC)
	lw.linef("  Host interface (if found)   : %s (state=%s)", s.HostIf, s.HostIfState)
	lw.linef("  Protocol                    : %s", s.Protocol)
	lw.linef("  Speed [Gb/s]                : %s", s.Speed)
	lw.linef("  Active FEC                  : %s", s.ActiveFEC)
	lw.linef("  Link Down Count             : %s", s.LinkDown)
	lw.linef("  Link Down (GB host / line)  : %s / %s", s.LinkDownGBHost, s.LinkDownGBLine)
	lw.linef("  Time since last clear [min] : %s", s.TimeSinceClear)
}

func writeBERSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line("[BER / FEC Metrics]")
	lw.linef("  Raw BER lanes 0-3           : %s", strings.Join(s.RawBERLanes[:], ", "))
	lw.linef("  Raw BER (aggregate)         : %s (%s)", s.RawBERStr, amber.ScientificString(s.RawBER))
	lw.linef("  Effective BER               : %s (%s)", s.EffBERStr, amber.ScientificString(s.EffBER))
	lw.linef("  FEC Histogram summary       : %s", s.Hist.Summary())

	lw.line("")
	lw.line("  [Detailed FEC Histogram (all 16 bins)]")
	total := s.Hist.Total()
	if total > 0 {
		for i, count := range s.Hist {
			pct := float64(count) / float64(total) * 100
			lw.linef("    Bin %2d: %8s (%15s) - %5.2f%%", i, fec.FormatCount(count), fec.GroupDigits(count), pct)
		}
	} else {
		lw.line("    All bins are zero (no FEC corrections)")
	}
}

func writeSNRSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line("[SNR (if available)]")
	lw.linef("  Media lanes 0-3             : %s", strings.Join(s.SNRMedia[:], ", "))
	lw.linef("  Host  lanes 0-3             : %s", strings.Join(s.SNRHost[:], ", "))
}

func writeCableSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line("[Cable / Module]")
	lw.linef("  Cable PN                    : %s", s.CablePN)
	lw.linef("  Cable SN                    : %s", s.CableSN)
	lw.linef("  Cable technology            : %s", s.CableTech)
	lw.linef("  Cable type                  : %s", s.CableType)
	lw.linef("  Vendor                      : %s", s.Vendor)
	lw.linef("  Length                      : %s", s.CableLength)
	lw.linef("  Module temperature          : %s", s.ModuleTemp)
	lw.linef("  Module voltage              : %s", s.ModuleVolt)
}

func writeEventsSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line("[Link Events / Recovery]")
	lw.linef("  Successful recovery events  : %s", s.SuccRecovery)
	lw.linef("  Total successful recoveries : %s", s.TotalRecovery)
	lw.linef("  Unintentional link-downs    : %s", s.UnintentDown)
	lw.linef("  Intentional link-downs      : %s", s.IntentDown)
	lw.linef("  Last down blame             : %s", s.DownBlame)
	lw.linef("  Last local reason opcode    : %s", s.LastDownReason)
}

func writeVerdictSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line(banner)
	lw.line("[SUMMARY / VERDICT]")
	lw.line(banner)
	lw.linef("  Status: %s", s.Verdict.Advice())
	lw.line("")
	lw.line("  Quick Reference:")
	lw.linef("    - Port: %s", s.Port)
	lw.linef("    - Interface: %s (%s)", s.HostIf, s.HostIfState)
	lw.linef("    - Speed: %s Gb/s", s.Speed)
	lw.linef("    - Raw BER: %s", amber.ScientificString(s.RawBER))
	lw.linef("    - Effective BER: %s", amber.ScientificString(s.EffBER))
	lw.linef("    - Link Downs: %s", s.LinkDown)
	lw.line("")
}

func writeHeadlineSection(lw *lineWriter, s Summary) {
	lw.line("[Grep-Friendly Headline]")
	lw.linef("  %s", s.Headline())
}

func writeStatsSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line(banner)
	lw.line("[Additional Statistics]")
	lw.line(banner)

	total := s.Hist.Total()
	elapsedMin := s.Record.Float("Time_since_last_clear_[Min]")
	if perMin, perSec, ok := fec.Rates(total, elapsedMin); ok {
		lw.linef("  FEC Correction Rate         : %s/sec (%s/sec)", fec.FormatCount(int64(perSec)), fec.GroupDigits(int64(perSec)))
		lw.linef("  FEC Correction Rate         : %s/min (%s/min)", fec.FormatCount(int64(perMin)), fec.GroupDigits(int64(perMin)))
	}

	// Estimated uptime assumes each link-down event lasts one second. A
	// deliberately rough heuristic, labeled as such in the output.
	if downs := s.Record.Int("Link_Down"); downs != nil && elapsedMin != nil && *elapsedMin > 0 {
		elapsedSec := *elapsedMin * 60
		uptime := (elapsedSec - float64(*downs)) / elapsedSec * 100
		lw.linef("  Estimated Uptime            : %.4f%% (rough estimate based on %d link downs)", uptime, *downs)
	}

	if s.RawBER != nil {
		lw.linef("  Raw BER Analysis            : %.2e", *s.RawBER)
		switch {
		case *s.RawBER > 1e-6:
			lw.line("    WARNING: Very high raw BER - link may be unstable")
		case *s.RawBER > 1e-8:
			lw.line("    CAUTION: Elevated raw BER - monitor closely")
		default:
			lw.line("    OK: Raw BER is within acceptable range")
		}
	}

	if s.EffBER != nil {
		lw.linef("  Effective BER Analysis      : %.2e", *s.EffBER)
		if *s.EffBER > 1e-12 {
			lw.line("    WARNING: Non-negligible effective BER detected")
		} else {
			lw.line("    OK: Effective BER is excellent")
		}
	}

	if temp := s.Record.Float("Module_Temperature"); temp != nil {
		lw.linef("  Module Temperature          : %gC", *temp)
		switch {
		case *temp > 70:
			lw.line("    WARNING: High temperature - may affect performance")
		case *temp > 60:
			lw.line("    CAUTION: Elevated temperature - monitor")
		default:
			lw.line("    OK: Temperature is within normal range")
		}
	}

	if volt := s.Record.Float("Module_Voltage"); volt != nil {
		lw.linef("  Module Voltage              : %g mV", *volt)
		// Typical supply range for optical modules is 2.97V - 3.63V.
		if *volt < 2970 || *volt > 3630 {
			lw.line("    WARNING: Voltage outside typical range (2.97V - 3.63V)")
		} else {
			lw.line("    OK: Voltage is within normal range")
		}
	}
}

// fieldCategory groups known columns for the raw field dump. Category order
// is fixed; anything not listed lands in the trailing Other Fields section.
type fieldCategory struct {
	name   string
	fields []string
}

func knownFieldCategories() []fieldCategory {
	hist := make([]string, fec.Bins)
	for i := range hist {
		hist[i] = fmt.Sprintf("hist%d", i)
	}
	var snr []string
	for i := 0; i < 4; i++ {
		snr = append(snr, fmt.Sprintf("snr_media_lane%d", i))
	}
	for i := 0; i < 4; i++ {
		snr = append(snr, fmt.Sprintf("snr_host_lane%d", i))
	}
	return []fieldCategory{
		{"Port & Protocol", []string{"Port_Number", "MAC_Address", "Protocol", "Speed_[Gb/s]", "Active_FEC"}},
		{"Link Status", []string{"Link_Down", "Link_Down_GB_host", "Link_Down_GB_line", "Time_since_last_clear_[Min]"}},
		{"BER Metrics", []string{"Raw_BER", "Raw_BER_lane0", "Raw_BER_lane1", "Raw_BER_lane2", "Raw_BER_lane3", "Effective_BER"}},
		{"FEC Histogram", hist},
		{"SNR", snr},
		{"Cable/Module", []string{"Cable_PN", "Cable_SN", "cable_technology", "cable_type", "cable_vendor", "cable_length", "vendor_name", "Module_Temperature", "Module_Voltage"}},
		{"Link Events", []string{"successful_recovery_events", "total_successful_recovery_events", "unintentional_link_down_events", "intentional_link_down_events", "local_reason_opcode", "down_blame"}},
	}
}

func writeRawFieldsSection(lw *lineWriter, s Summary) {
	lw.line("")
	lw.line(banner)
	lw.line("[All Available CSV Fields (Raw Data)]")
	lw.line(banner)
	lw.line("  The following fields were found in the CSV (some may be empty):")
	lw.line("")

	displayed := make(map[string]bool)
	for _, cat := range knownFieldCategories() {
		var lines []string
		for _, field := range cat.fields {
			if !s.Record.Has(field) {
				continue
			}
			displayed[field] = true
			// Literal "N/A" values carry no more information than an
			// empty cell and are filtered the same way.
			if v := s.Record.GetStringDefault(field, ""); v != "" && v != amber.DefaultPlaceholder {
				lines = append(lines, fmt.Sprintf("    %-40s : %s", field, v))
			}
		}
		if len(lines) == 0 {
			continue
		}
		lw.linef("  [%s]", cat.name)
		for _, line := range lines {
			lw.line(line)
		}
		lw.line("")
	}

	var remaining []string
	for _, key := range s.Record.Keys() {
		if displayed[key] {
			continue
		}
		if v := s.Record.GetStringDefault(key, ""); v != "" && v != amber.DefaultPlaceholder {
			remaining = append(remaining, key)
		}
	}
	if len(remaining) > 0 {
		sort.Strings(remaining)
		lw.line("  [Other Fields]")
		for _, key := range remaining {
			lw.linef("    %-40s : %s", key, s.Record.GetStringDefault(key, ""))
		}
		lw.line("")
	}
}
