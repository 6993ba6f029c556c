package hostif

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinkCli struct {
	out []byte
	err error
}

func (f *fakeLinkCli) LinkShow() ([]byte, error) { return f.out, f.err }

const sampleLinkShow = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN mode DEFAULT group default qlen 1000\    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00
2: enp13s0f0np0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 9000 qdisc mq state UP mode DEFAULT group default qlen 1000\    link/ether 9c:63:c0:03:58:d0 brd ff:ff:ff:ff:ff:ff
3: enp13s0f1np1: <NO-CARRIER,BROADCAST,MULTICAST,UP> mtu 1500 qdisc mq state DOWN mode DEFAULT group default qlen 1000\    link/ether 9c:63:c0:03:58:d1 brd ff:ff:ff:ff:ff:ff
`

func TestResolve(t *testing.T) {
	r := &Resolver{cli: &fakeLinkCli{out: []byte(sampleLinkShow)}}
	m := r.Resolve()
	require.Len(t, m, 2, "loopback has no link/ether and is skipped")

	up, ok := m["9c:63:c0:03:58:d0"]
	require.True(t, ok)
	assert.Equal(t, "enp13s0f0np0", up.Name)
	assert.Equal(t, StateUp, up.OperState)

	down, ok := m["9c:63:c0:03:58:d1"]
	require.True(t, ok)
	assert.Equal(t, "enp13s0f1np1", down.Name)
	assert.Equal(t, StateDown, down.OperState, "explicit state token overrides UP flag")
}

func TestResolveCommandFailure(t *testing.T) {
	r := &Resolver{cli: &fakeLinkCli{err: errors.New("exec: ip not found")}}
	m := r.Resolve()
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestJoinContinuations(t *testing.T) {
	in := "2: eth0: <UP> mtu 9000 \\\n    link/ether aa:bb:cc:dd:ee:ff brd ff:ff:ff:ff:ff:ff\n3: eth1: <UP>\n"
	lines := joinContinuations(in)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "eth0")
	assert.Contains(t, lines[0], "link/ether aa:bb:cc:dd:ee:ff")
	assert.Contains(t, lines[1], "eth1")
}

func TestParseEntryHeader(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantName  string
		wantState string
	}{
		{
			"flags only",
			"2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 9000",
			"eth0", StateUp,
		},
		{
			"state token overrides flags",
			"2: eth0: <BROADCAST,UP> mtu 9000 qdisc mq state DOWN mode DEFAULT",
			"eth0", StateDown,
		},
		{
			"unrecognized state token keeps flag estimate",
			"2: eth0: <UP> state DORMANT",
			"eth0", StateUp,
		},
		{
			"down flag",
			"4: eth2: <BROADCAST,DOWN> mtu 1500",
			"eth2", StateDown,
		},
		{
			"no flags no state",
			"5: eth3: mtu 1500",
			"eth3", StateUnknown,
		},
		{
			"not an entry line",
			"    link/ether aa:bb:cc:dd:ee:ff brd ff:ff:ff:ff:ff:ff",
			"", StateUnknown,
		},
		{
			"empty", "", "", StateUnknown,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			name, state := parseEntryHeader(tc.line)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantState, state)
		})
	}
}

func TestParseMAC(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:dd:ee:ff",
		parseMAC("2: eth0: <UP> link/ether AA:BB:CC:DD:EE:FF brd ff:ff:ff:ff:ff:ff"))
	assert.Equal(t, "aa:bb:cc:dd:ee:ff",
		parseMAC("2: eth0: <UP> link/ether aa:bb:cc:dd:ee:ff/64 brd ff:ff:ff:ff:ff:ff"),
		"broadcast-mask suffix is stripped")
	assert.Empty(t, parseMAC("1: lo: <LOOPBACK> link/loopback 00:00:00:00:00:00"))
}
