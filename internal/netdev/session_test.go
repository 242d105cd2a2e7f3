package netdev

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	closed int
}

func (s *stubSession) Run(ctx context.Context, cmd string) (string, error)           { return "", nil }
func (s *stubSession) Configure(ctx context.Context, cmds ...string) (string, error) { return "", nil }
func (s *stubSession) Close() error {
	s.closed++
	return nil
}

type stubDialer struct {
	sess    *stubSession
	dialErr error
	dials   int
}

func (d *stubDialer) Dial(ctx context.Context, profile DeviceProfile) (Session, error) {
	d.dials++
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	return d.sess, nil
}

func testProfile() DeviceProfile {
	return DeviceProfile{DeviceType: "cisco_ios", Host: "192.0.2.10", Username: "admin", Password: "pw"}
}

func TestWithSessionClosesOnSuccess(t *testing.T) {
	d := &stubDialer{sess: &stubSession{}}

	out, err := WithSession(context.Background(), d, testProfile(), func(s Session) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, d.dials)
	assert.Equal(t, 1, d.sess.closed, "teardown runs exactly once")
}

func TestWithSessionClosesWhenFnFails(t *testing.T) {
	d := &stubDialer{sess: &stubSession{}}
	cmdErr := &CommandError{Cmd: "show foo", Output: "% Invalid input"}

	_, err := WithSession(context.Background(), d, testProfile(), func(s Session) (string, error) {
		return "", cmdErr
	})

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, d.sess.closed, "teardown runs even on the error path")
}

func TestWithSessionPropagatesDialError(t *testing.T) {
	connErr := &ConnectionError{Host: "192.0.2.10", Err: errors.New("unreachable")}
	d := &stubDialer{dialErr: connErr}

	called := false
	_, err := WithSession(context.Background(), d, testProfile(), func(s Session) (string, error) {
		called = true
		return "", nil
	})

	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.False(t, called, "no command may run after a failed dial")
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, testProfile().Validate())

	p := testProfile()
	p.Password = ""
	p.Host = ""
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
	assert.Contains(t, err.Error(), "password")
}

func TestConnectionErrorUnwraps(t *testing.T) {
	inner := errors.New("handshake failed")
	err := &ConnectionError{Host: "r1", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "r1")
}
