// Package fec summarizes forward-error-correction histograms.
package fec

import (
	"fmt"
	"strings"

	"example.com/amberlink/internal/amber"
)

// Bins is the fixed number of correction-severity tiers. Bin 0 is the least
// severe tier; index order is significant.
const Bins = 16

// NoDataMessage is emitted when every bin is zero.
const NoDataMessage = "No FEC histogram data (all bins are zero)."

// Histogram holds the hist0..hist15 correction counts for one record.
type Histogram [Bins]int64

// HistogramFromRecord reads the hist0..hist15 columns. Missing or
// unparsable bins default to 0.
func HistogramFromRecord(rec amber.Record) Histogram {
	var h Histogram
	for i := 0; i < Bins; i++ {
		if n := rec.Int(fmt.Sprintf("hist%d", i)); n != nil && *n >= 0 {
			h[i] = *n
		}
	}
	return h
}

// Total is the correction count across all bins.
func (h Histogram) Total() int64 {
	var total int64
	for _, c := range h {
		total += c
	}
	return total
}

// HighestNonZeroBin returns the index of the highest-indexed non-zero bin,
// or -1 when all bins are zero.
func (h Histogram) HighestNonZeroBin() int {
	for i := Bins - 1; i >= 0; i-- {
		if h[i] > 0 {
			return i
		}
	}
	return -1
}

// Summary renders a one-line digest: total corrections, the first four
// bins, and the highest non-zero bin index. An all-zero histogram yields
// the fixed no-data message instead of a zero-filled digest.
func (h Histogram) Summary() string {
	total := h.Total()
	maxBin := h.HighestNonZeroBin()
	if total == 0 || maxBin < 0 {
		return NoDataMessage
	}
	first := make([]string, 0, 4)
	for _, c := range h[:4] {
		first = append(first, FormatCount(c))
	}
	return fmt.Sprintf(
		"Total corrections: %s (%s) across %d bins. First bins: [%s, ...]. Highest nonzero bin index: %d.",
		FormatCount(total), GroupDigits(total), Bins, strings.Join(first, ", "), maxBin,
	)
}

// Rates derives corrections-per-minute and corrections-per-second from the
// total and an elapsed-minutes reading. ok is false when either input is
// missing or non-positive; callers must then omit the derived lines
// entirely rather than print zero rates.
func Rates(total int64, elapsedMin *float64) (perMin, perSec float64, ok bool) {
	if elapsedMin == nil || *elapsedMin <= 0 || total <= 0 {
		return 0, 0, false
	}
	perMin = float64(total) / *elapsedMin
	perSec = perMin / 60
	return perMin, perSec, true
}
