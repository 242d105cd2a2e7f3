package netdev

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

var (
	// IOS exec/privileged/config prompts: "Router>", "Router#",
	// "Router(config)#", "Router(config-if)#".
	promptRe = regexp.MustCompile(`(?m)^[\w.\-]+(\([\w\-]+\))?[>#] ?$`)
	// IOS error markers start the line with a percent sign,
	// e.g. "% Invalid input detected at '^' marker."
	deviceErrRe = regexp.MustCompile(`(?m)^% ?\S`)
	passwordRe  = regexp.MustCompile(`(?i)assword: ?$`)
)

// SSHDialer opens interactive management sessions over SSH. The remote
// side is a network OS shell, not a POSIX shell, so commands go through
// a single pty channel and output is read up to the device prompt.
type SSHDialer struct{}

func NewSSHDialer() *SSHDialer { return &SSHDialer{} }

func (d *SSHDialer) Dial(ctx context.Context, profile DeviceProfile) (Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, &ConnectionError{Host: profile.Host, Err: err}
	}

	addr := net.JoinHostPort(profile.Host, profile.port())

	hostKeys, err := hostKeyCallback(profile)
	if err != nil {
		return nil, &ConnectionError{Host: profile.Host, Err: err}
	}

	cfg := &ssh.ClientConfig{
		User:            profile.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(profile.Password)},
		HostKeyCallback: hostKeys,
		Timeout:         profile.connectTimeout(),
	}

	nd := &net.Dialer{Timeout: profile.connectTimeout()}
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Host: profile.Host, Err: err}
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, &ConnectionError{Host: profile.Host, Err: err}
	}
	client := ssh.NewClient(clientConn, chans, reqs)

	sess, err := newDeviceSession(ctx, client, profile)
	if err != nil {
		client.Close()
		return nil, &ConnectionError{Host: profile.Host, Err: err}
	}
	return sess, nil
}

func hostKeyCallback(profile DeviceProfile) (ssh.HostKeyCallback, error) {
	if profile.InsecureHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	path := profile.KnownHostsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("known hosts path not set and home dir unavailable: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	return knownhosts.New(path)
}

// deviceSession drives the interactive shell: write a command line, read
// until the prompt comes back, hand the text in between to the caller.
type deviceSession struct {
	client      *ssh.Client
	sess        *ssh.Session
	stdin       io.WriteCloser
	out         chan string
	host        string
	secret      string
	enabled     bool
	readTimeout time.Duration
}

func newDeviceSession(ctx context.Context, client *ssh.Client, profile DeviceProfile) (*deviceSession, error) {
	sess, err := client.NewSession()
	if err != nil {
		return nil, err
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := sess.RequestPty("vt100", 0, 200, modes); err != nil {
		sess.Close()
		return nil, err
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		return nil, err
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		return nil, err
	}
	if err := sess.Shell(); err != nil {
		sess.Close()
		return nil, err
	}

	s := &deviceSession{
		client:      client,
		sess:        sess,
		stdin:       stdin,
		out:         make(chan string, 16),
		host:        profile.Host,
		secret:      profile.EnableSecret,
		readTimeout: profile.readTimeout(),
	}
	go s.pump(stdout)

	// Provoke a prompt past any login banner, then disable paging so
	// long outputs arrive in one piece. The caller closes the client on
	// error, which tears down the shell channel with it.
	if _, err := io.WriteString(stdin, "\n"); err != nil {
		return nil, err
	}
	if _, err := s.readUntil(ctx, promptRe); err != nil {
		return nil, err
	}
	if _, err := s.Run(ctx, "terminal length 0"); err != nil {
		return nil, err
	}
	return s, nil
}

// pump moves remote output onto a channel so reads can race against the
// context and the read timeout.
func (s *deviceSession) pump(r io.Reader) {
	defer close(s.out)
	b := make([]byte, 4096)
	for {
		n, err := r.Read(b)
		if n > 0 {
			s.out <- strings.ReplaceAll(string(b[:n]), "\r", "")
		}
		if err != nil {
			return
		}
	}
}

func (s *deviceSession) readUntil(ctx context.Context, stops ...*regexp.Regexp) (string, error) {
	var b strings.Builder

	matched := func() bool {
		for _, re := range stops {
			if re.MatchString(b.String()) {
				return true
			}
		}
		return false
	}

	timer := time.NewTimer(s.readTimeout)
	defer timer.Stop()

	for !matched() {
		select {
		case chunk, ok := <-s.out:
			if !ok {
				return b.String(), fmt.Errorf("connection closed while waiting for prompt")
			}
			b.WriteString(chunk)
		case <-timer.C:
			return b.String(), fmt.Errorf("timed out after %s waiting for prompt", s.readTimeout)
		case <-ctx.Done():
			return b.String(), ctx.Err()
		}
	}
	return b.String(), nil
}

func (s *deviceSession) Run(ctx context.Context, cmd string) (string, error) {
	if _, err := fmt.Fprintf(s.stdin, "%s\n", cmd); err != nil {
		return "", &ConnectionError{Host: s.host, Err: err}
	}
	raw, err := s.readUntil(ctx, promptRe)
	if err != nil {
		return "", &ConnectionError{Host: s.host, Err: err}
	}
	out := stripEchoAndPrompt(raw, cmd)
	if deviceErrRe.MatchString(out) {
		return out, &CommandError{Cmd: cmd, Output: strings.TrimSpace(out)}
	}
	return out, nil
}

func (s *deviceSession) Configure(ctx context.Context, cmds ...string) (string, error) {
	if err := s.enable(ctx); err != nil {
		return "", err
	}

	seq := make([]string, 0, len(cmds)+2)
	seq = append(seq, "configure terminal")
	seq = append(seq, cmds...)
	seq = append(seq, "end")

	var b strings.Builder
	for _, cmd := range seq {
		out, err := s.Run(ctx, cmd)
		b.WriteString(out)
		if err != nil {
			return b.String(), err
		}
	}
	return b.String(), nil
}

// enable raises the session to privileged exec mode when an enable
// secret is configured. Without a secret the login user is assumed to
// land in privileged mode already.
func (s *deviceSession) enable(ctx context.Context) error {
	if s.enabled || s.secret == "" {
		return nil
	}
	if _, err := io.WriteString(s.stdin, "enable\n"); err != nil {
		return &ConnectionError{Host: s.host, Err: err}
	}
	raw, err := s.readUntil(ctx, promptRe, passwordRe)
	if err != nil {
		return &ConnectionError{Host: s.host, Err: err}
	}
	if passwordRe.MatchString(raw) {
		if _, err := fmt.Fprintf(s.stdin, "%s\n", s.secret); err != nil {
			return &ConnectionError{Host: s.host, Err: err}
		}
		if _, err := s.readUntil(ctx, promptRe); err != nil {
			return &ConnectionError{Host: s.host, Err: err}
		}
	}
	s.enabled = true
	return nil
}

func (s *deviceSession) Close() error {
	s.stdin.Close()
	s.sess.Close()
	return s.client.Close()
}

// stripEchoAndPrompt removes the echoed command line from the front of
// the captured text and the device prompt from the back, leaving only
// the command's own output.
func stripEchoAndPrompt(raw, cmd string) string {
	lines := strings.Split(raw, "\n")

	start := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == strings.TrimSpace(cmd) {
			start = i + 1
			break
		}
	}

	end := len(lines)
	for end > start && (strings.TrimSpace(lines[end-1]) == "" || promptRe.MatchString(lines[end-1])) {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}
