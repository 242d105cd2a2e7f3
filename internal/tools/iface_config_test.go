package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showRunGi01 = "show running-config interface GigabitEthernet0/1"

const runningUp = `interface GigabitEthernet0/1
 ip address 192.0.2.1 255.255.255.0
 no shutdown
!`

const runningDown = `interface GigabitEthernet0/1
 ip address 192.0.2.1 255.255.255.0
 shutdown
!`

func TestIfaceConfigAppliesShutdownWhenInterfaceIsUp(t *testing.T) {
	d := &fakeDialer{outputs: map[string]string{showRunGi01: runningUp}}
	i := NewIfaceConfig(d, testProfile())

	out, err := i.Execute(context.Background(), `{"interface":"GigabitEthernet0/1","state":"shutdown"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "[ok]")

	require.Equal(t, 1, d.dialCount())
	s := d.session(0)
	assert.Equal(t, []string{showRunGi01}, s.runCmds(), "state is read before any write")
	require.Len(t, s.configCalls(), 1)
	assert.Equal(t, []string{"interface GigabitEthernet0/1", "shutdown"}, s.configCalls()[0])
	assert.Equal(t, 1, s.closeCount())
}

func TestIfaceConfigIsIdempotent(t *testing.T) {
	d := &fakeDialer{outputs: map[string]string{showRunGi01: runningUp}}
	i := NewIfaceConfig(d, testProfile())
	input := `{"interface":"GigabitEthernet0/1","state":"shutdown"}`

	out, err := i.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "[ok]")

	// The interface is now admin-down; the identical second call must
	// detect that and skip the write.
	d.setOutputs(map[string]string{showRunGi01: runningDown})

	out, err = i.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "[skip]")

	require.Equal(t, 2, d.dialCount())
	assert.Len(t, d.session(0).configCalls(), 1, "shutdown issued at most once")
	assert.Empty(t, d.session(1).configCalls(), "second call issues no configuration command")
}

func TestIfaceConfigNoShutdownSkipsWhenAlreadyUp(t *testing.T) {
	d := &fakeDialer{outputs: map[string]string{showRunGi01: runningUp}}
	i := NewIfaceConfig(d, testProfile())

	out, err := i.Execute(context.Background(), `{"interface":"GigabitEthernet0/1","state":"no-shutdown"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "[skip]")
	assert.Empty(t, d.session(0).configCalls())
}

func TestIfaceConfigRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"interface with shell metacharacters", `{"interface":"Gi0/1; reload","state":"shutdown"}`},
		{"interface with spaces", `{"interface":"Gigabit Ethernet0/1","state":"shutdown"}`},
		{"empty interface", `{"interface":"","state":"shutdown"}`},
		{"unknown state", `{"interface":"GigabitEthernet0/1","state":"disable"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &fakeDialer{}
			i := NewIfaceConfig(d, testProfile())

			_, err := i.Execute(context.Background(), tc.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, d.dialCount())
		})
	}
}
