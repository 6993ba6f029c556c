// Package hostif resolves hardware addresses against the host's live
// network-interface state, parsed from `ip -o link` output.
package hostif

import (
	"strings"
	"time"
)

// Operational states reported for an interface.
const (
	StateUp      = "UP"
	StateDown    = "DOWN"
	StateUnknown = "UNKNOWN"
)

// Interface describes one host network interface.
type Interface struct {
	Name      string
	OperState string
}

// linkCli supplies the raw interface-listing text. Injectable so the parser
// is testable without the ip tool present.
type linkCli interface {
	LinkShow() ([]byte, error)
}

// Resolver builds a MAC address to interface mapping.
type Resolver struct {
	cli linkCli
}

// NewResolver returns a resolver backed by the real ip command, bounded by
// timeout per invocation.
func NewResolver(timeout time.Duration) *Resolver {
	return &Resolver{cli: newIPExec(timeout)}
}

// Resolve queries the host and returns a mapping from canonical lower-case
// MAC address to interface name and operational state. It degrades to an
// empty mapping when the command is unavailable or its output unparsable;
// it never fails.
func (r *Resolver) Resolve() map[string]Interface {
	out, err := r.cli.LinkShow()
	if err != nil {
		return map[string]Interface{}
	}
	return parseLinkShow(out)
}

// parseLinkShow extracts interface entries from free-form `ip -o link`
// output. One logical entry may wrap across physical lines joined by a
// trailing backslash.
func parseLinkShow(out []byte) map[string]Interface {
	mapping := make(map[string]Interface)
	for _, line := range joinContinuations(string(out)) {
		name, state := parseEntryHeader(line)
		mac := parseMAC(line)
		if name == "" || mac == "" {
			continue
		}
		mapping[mac] = Interface{Name: name, OperState: state}
	}
	return mapping
}

// joinContinuations merges physical lines ending in a backslash into single
// logical lines.
func joinContinuations(out string) []string {
	var lines []string
	var current strings.Builder
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.HasSuffix(line, "\\") {
			current.WriteString(strings.TrimSuffix(line, "\\"))
			current.WriteString(" ")
			continue
		}
		current.WriteString(line)
		if s := strings.TrimSpace(current.String()); s != "" {
			lines = append(lines, s)
		}
		current.Reset()
	}
	return lines
}

// parseEntryHeader handles lines of the form
//
//	5: enp13s0f0np0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 9000 ... state UP ...
//
// returning the interface name and derived operational state. The bracketed
// flag list gives a first estimate; an explicit "state TOKEN" field
// overrides it when TOKEN is a known state.
func parseEntryHeader(line string) (name, state string) {
	state = StateUnknown
	if line == "" || !strings.Contains(line, ":") || line[0] < '0' || line[0] > '9' {
		return "", state
	}
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 2 {
		return "", state
	}
	name = strings.TrimSpace(parts[1])

	if open := strings.Index(line, "<"); open >= 0 {
		if end := strings.Index(line, ">"); end > open {
			flags := strings.Split(line[open+1:end], ",")
			state = stateFromFlags(flags)
		}
	}

	tokens := strings.Fields(line)
	for i, tok := range tokens {
		if strings.EqualFold(tok, "state") && i+1 < len(tokens) {
			explicit := strings.ToUpper(tokens[i+1])
			switch explicit {
			case StateUp, StateDown, StateUnknown:
				state = explicit
			}
			break
		}
	}
	return name, state
}

func stateFromFlags(flags []string) string {
	up, down := false, false
	for _, f := range flags {
		switch strings.TrimSpace(f) {
		case "UP", "LOWER_UP":
			up = true
		case "DOWN":
			down = true
		}
	}
	switch {
	case up:
		return StateUp
	case down:
		return StateDown
	default:
		return StateUnknown
	}
}

// parseMAC extracts the hardware address following the link/ether marker,
// stripping any trailing broadcast-mask suffix.
func parseMAC(line string) string {
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		if strings.EqualFold(tok, "link/ether") && i+1 < len(tokens) {
			mac := strings.ToLower(tokens[i+1])
			if slash := strings.Index(mac, "/"); slash >= 0 {
				mac = mac[:slash]
			}
			return mac
		}
	}
	return ""
}
