package tools

import (
	"context"
	"sync"

	"torii/internal/netdev"
)

// fakeSession records every command it is handed and how often it was
// closed. Outputs are keyed by exact command string.
type fakeSession struct {
	mu      sync.Mutex
	runs    []string
	configs [][]string
	outputs map[string]string
	runErr  error
	closed  int
}

func (s *fakeSession) Run(ctx context.Context, cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, cmd)
	if s.runErr != nil {
		return "", s.runErr
	}
	return s.outputs[cmd], nil
}

func (s *fakeSession) Configure(ctx context.Context, cmds ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = append(s.configs, cmds)
	return "", nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) runCmds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.runs...)
}

func (s *fakeSession) configCalls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.configs...)
}

// fakeDialer hands out a fresh fakeSession per Dial, mirroring the
// one-session-per-invocation contract.
type fakeDialer struct {
	mu       sync.Mutex
	dialErr  error
	runErr   error
	outputs  map[string]string
	sessions []*fakeSession
}

func (d *fakeDialer) Dial(ctx context.Context, profile netdev.DeviceProfile) (netdev.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	s := &fakeSession{outputs: d.outputs, runErr: d.runErr}
	d.sessions = append(d.sessions, s)
	return s, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

func (d *fakeDialer) session(i int) *fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions[i]
}

func (d *fakeDialer) setOutputs(outputs map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outputs = outputs
}

func testProfile() netdev.DeviceProfile {
	return netdev.DeviceProfile{
		DeviceType: "cisco_ios",
		Host:       "192.0.2.10",
		Username:   "admin",
		Password:   "secret",
	}
}
