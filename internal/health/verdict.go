// Package health derives a qualitative link-health verdict from optional
// bit-error-rate readings.
package health

// Verdict is the coarse classification of a link's health. It is an
// advisory heuristic, not a vendor pass/fail gate.
type Verdict int

const (
	Unknown Verdict = iota
	Healthy
	CorrectableNoisy
	Marginal
	Intermediate
)

func (v Verdict) String() string {
	switch v {
	case Healthy:
		return "Healthy"
	case CorrectableNoisy:
		return "CorrectableNoisy"
	case Marginal:
		return "Marginal"
	case Intermediate:
		return "Intermediate"
	default:
		return "Unknown"
	}
}

// Advice returns the full human-readable verdict sentence used in reports.
func (v Verdict) Advice() string {
	switch v {
	case Healthy:
		return "Healthy: very low BER; FEC overhead looks minimal."
	case CorrectableNoisy:
		return "Correctable but somewhat noisy: FEC is doing real work; worth monitoring if issues persist."
	case Marginal:
		return "Potentially marginal link: effective BER is non-negligible; consider checking optics, cable, and host configuration."
	case Intermediate:
		return "Intermediate: some corrections present; suggest deeper review of histograms and SNR."
	default:
		return "Unknown: BER fields missing or unparsable – check full CSV."
	}
}

// Thresholds separating the verdict tiers.
const (
	rawBERThreshold = 1e-8
	effBERThreshold = 1e-12
)

// Classify maps the optional raw and effective BER readings to a Verdict.
// nil means the reading is absent. The rules below are evaluated in order
// and the first match wins; they are not mutually exclusive by construction,
// so reordering them changes outcomes. Keep the order.
func Classify(rawBER, effBER *float64) Verdict {
	if rawBER == nil && effBER == nil {
		return Unknown
	}
	rawLow := rawBER == nil || *rawBER <= rawBERThreshold
	effLow := effBER == nil || *effBER <= effBERThreshold

	if rawLow && effLow {
		return Healthy
	}
	if rawBER != nil && *rawBER > rawBERThreshold && effLow {
		return CorrectableNoisy
	}
	if effBER != nil && *effBER > effBERThreshold {
		return Marginal
	}
	return Intermediate
}
