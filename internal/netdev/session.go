package netdev

import (
	"context"
	"log/slog"
)

// Session is one authenticated management connection to a device. A
// session is exclusively owned by a single tool invocation and must be
// closed by the end of that invocation.
type Session interface {
	// Run executes one exec-mode command and returns its plain-text output.
	Run(ctx context.Context, cmd string) (string, error)
	// Configure enters configuration mode, applies cmds in order and
	// leaves configuration mode again, returning the combined output.
	Configure(ctx context.Context, cmds ...string) (string, error)
	Close() error
}

// Dialer opens sessions. The SSH implementation is the production one;
// tests substitute fakes that record commands.
type Dialer interface {
	Dial(ctx context.Context, profile DeviceProfile) (Session, error)
}

// WithSession dials a fresh session, runs fn against it and releases the
// session on every exit path, including errors inside fn. Exactly one
// connection is opened per call and none is reused afterwards.
func WithSession(ctx context.Context, d Dialer, profile DeviceProfile, fn func(Session) (string, error)) (string, error) {
	sess, err := d.Dial(ctx, profile)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			slog.Warn("session close failed", "host", profile.Host, "error", cerr)
		}
	}()

	return fn(sess)
}
