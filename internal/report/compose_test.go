package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/health"
	"example.com/amberlink/internal/hostif"
)

func sampleRecord() amber.Record {
	rec := amber.NewRecord()
	rec.Set("Port_Number", "1")
	rec.Set("MAC_Address", "0x9c63c00358d0")
	rec.Set("Protocol", "ETH")
	rec.Set("Speed_[Gb/s]", "200")
	rec.Set("Active_FEC", "RS-FEC (544,514)")
	rec.Set("Link_Down", "2")
	rec.Set("Time_since_last_clear_[Min]", "100")
	rec.Set("Raw_BER", "5e-7")
	rec.Set("Effective_BER", "2e-13")
	rec.Set("hist0", "12345")
	rec.Set("hist1", "678")
	rec.Set("Cable_PN", "MCP1600-C003")
	rec.Set("cable_vendor", "ACME")
	rec.Set("Module_Temperature", "45")
	rec.Set("Module_Voltage", "3300")
	rec.Set("some_custom_counter", "7")
	return rec
}

func sampleIfmap() map[string]hostif.Interface {
	return map[string]hostif.Interface{
		"9c:63:c0:03:58:d0": {Name: "enp13s0f0np0", OperState: hostif.StateUp},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())

	assert.Equal(t, "1", s.Port)
	assert.Equal(t, "0x9c63c00358d0", s.MACHex)
	assert.Equal(t, "9c:63:c0:03:58:d0", s.MAC)
	assert.Equal(t, "enp13s0f0np0", s.HostIf)
	assert.Equal(t, hostif.StateUp, s.HostIfState)
	assert.Equal(t, "ACME", s.Vendor, "cable_vendor wins over vendor_name")
	assert.Equal(t, health.CorrectableNoisy, s.Verdict)
	assert.Equal(t, int64(13023), s.Hist.Total())
}

func TestSummarizeUnresolvedMAC(t *testing.T) {
	rec := amber.NewRecord()
	rec.Set("MAC_Address", "not-a-mac")
	s := Summarize(rec, sampleIfmap(), "in.csv", 0, time.Now())

	assert.Equal(t, "N/A", s.MAC)
	assert.Equal(t, "N/A", s.HostIf)
	assert.Equal(t, "N/A", s.HostIfState)
	assert.Equal(t, health.Unknown, s.Verdict)
}

func TestSummarizeLookupIndependentOfMapSize(t *testing.T) {
	large := sampleIfmap()
	for i := 0; i < 64; i++ {
		mac := fmt.Sprintf("aa:bb:cc:dd:ee:%02x", i)
		large[mac] = hostif.Interface{Name: fmt.Sprintf("eth%d", i), OperState: hostif.StateDown}
	}

	small := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())
	big := Summarize(sampleRecord(), large, "in.csv", 0, time.Now())

	assert.Equal(t, small.HostIf, big.HostIf)
	assert.Equal(t, small.HostIfState, big.HostIfState)
}

func TestSummarizeVendorFallback(t *testing.T) {
	rec := amber.NewRecord()
	rec.Set("vendor_name", "FallbackCo")
	s := Summarize(rec, nil, "in.csv", 0, time.Now())
	assert.Equal(t, "FallbackCo", s.Vendor)
}

func TestHeadline(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())
	got := s.Headline()

	assert.Contains(t, got, "PORT=1 ")
	assert.Contains(t, got, "IF=enp13s0f0np0 ")
	assert.Contains(t, got, "IF_STATE=UP ")
	assert.Contains(t, got, "MAC=9c:63:c0:03:58:d0 ")
	assert.Contains(t, got, "SPEED=200G ")
	assert.Contains(t, got, "LINK_DOWNS=2 ")
	assert.Contains(t, got, "RAW_BER=5.00e-7 ")
	assert.Contains(t, got, "EFF_BER=2.00e-13 ")
	assert.True(t, strings.HasSuffix(got, "'"), "verdict is quoted")
}

func TestToHeadlineRecord(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 3, time.Now())
	h := s.ToHeadlineRecord()

	assert.Equal(t, "in.csv", h.File)
	assert.Equal(t, 3, h.Row)
	assert.Equal(t, "enp13s0f0np0", h.Interface)
	assert.Equal(t, "CorrectableNoisy", h.Verdict)
	assert.Equal(t, "5.00e-7", h.RawBER)
}

func TestWriteTextSectionOrder(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Unix(1700000000, 0))
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	sections := []string{
		"amBER Link Health Report",
		"[Link / Protocol]",
		"[BER / FEC Metrics]",
		"[Detailed FEC Histogram (all 16 bins)]",
		"[SNR (if available)]",
		"[Cable / Module]",
		"[Link Events / Recovery]",
		"[SUMMARY / VERDICT]",
		"[Grep-Friendly Headline]",
		"[Additional Statistics]",
		"[All Available CSV Fields (Raw Data)]",
	}
	last := -1
	for _, sec := range sections {
		idx := strings.Index(out, sec)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", sec)
		assert.Greater(t, idx, last, "section %q out of order", sec)
		last = idx
	}
}

func TestWriteTextHistogramDetail(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Bin  0:")
	assert.Contains(t, out, "Bin 15:")
	assert.NotContains(t, out, "All bins are zero")
}

func TestWriteTextEmptyHistogram(t *testing.T) {
	rec := amber.NewRecord()
	rec.Set("Port_Number", "1")
	s := Summarize(rec, nil, "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))

	assert.Contains(t, buf.String(), "All bins are zero (no FEC corrections)")
	assert.Contains(t, buf.String(), "No FEC histogram data (all bins are zero).")
}

func TestWriteTextStats(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "FEC Correction Rate")
	assert.Contains(t, out, "Estimated Uptime")
	assert.Contains(t, out, "rough estimate based on 2 link downs")
	assert.Contains(t, out, "CAUTION: Elevated raw BER - monitor closely")
	assert.Contains(t, out, "OK: Effective BER is excellent")
	assert.Contains(t, out, "OK: Temperature is within normal range")
	assert.Contains(t, out, "OK: Voltage is within normal range")
}

func TestWriteTextRatesOmittedWithoutElapsed(t *testing.T) {
	rec := sampleRecord()
	rec.Set("Time_since_last_clear_[Min]", "")
	s := Summarize(rec, sampleIfmap(), "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))

	assert.NotContains(t, buf.String(), "FEC Correction Rate")
	assert.NotContains(t, buf.String(), "Estimated Uptime")
}

func TestWriteTextRawFields(t *testing.T) {
	s := Summarize(sampleRecord(), sampleIfmap(), "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "[Port & Protocol]")
	assert.Contains(t, out, "[Other Fields]")
	assert.Contains(t, out, "some_custom_counter")
}

func TestWriteTextRawFieldsSkipPlaceholders(t *testing.T) {
	rec := sampleRecord()
	rec.Set("Active_FEC", "N/A")
	rec.Set("some_custom_counter", "N/A")
	s := Summarize(rec, sampleIfmap(), "in.csv", 0, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	// The link section still shows the placeholder; the raw dump drops it.
	assert.Contains(t, out, "Active FEC                  : N/A")
	raw := out[strings.Index(out, "[All Available CSV Fields (Raw Data)]"):]
	assert.NotContains(t, raw, "Active_FEC")
	assert.NotContains(t, raw, "some_custom_counter")
}
