package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableCommandPerFamily(t *testing.T) {
	cases := []struct {
		family string
		want   string
	}{
		{"ipv4", "show ip route"},
		{"ipv6", "show ipv6 route"},
	}

	for _, tc := range cases {
		t.Run(tc.family, func(t *testing.T) {
			d := &fakeDialer{outputs: map[string]string{tc.want: "Codes: L - local, C - connected"}}
			r := NewRouteTable(d, testProfile())

			out, err := r.Execute(context.Background(), fmt.Sprintf(`{"family":%q}`, tc.family))
			require.NoError(t, err)
			assert.Contains(t, out, "Codes:")

			require.Equal(t, 1, d.dialCount())
			assert.Equal(t, []string{tc.want}, d.session(0).runCmds())
			assert.Equal(t, 1, d.session(0).closeCount())
		})
	}
}

func TestRouteTableRejectsUnknownFamily(t *testing.T) {
	for _, family := range []string{"ipv5", "IPV4", "arp", ""} {
		t.Run(family, func(t *testing.T) {
			d := &fakeDialer{}
			r := NewRouteTable(d, testProfile())

			_, err := r.Execute(context.Background(), fmt.Sprintf(`{"family":%q}`, family))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, d.dialCount())
		})
	}
}

func TestRouteTableRejectsMalformedInput(t *testing.T) {
	d := &fakeDialer{}
	r := NewRouteTable(d, testProfile())

	_, err := r.Execute(context.Background(), `{"family":`)
	require.Error(t, err)
	assert.Equal(t, 0, d.dialCount())
}
