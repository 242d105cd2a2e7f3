package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/netip"

	"torii/internal/netdev"
)

// Ping runs a ping from the router to a target address. The target must
// be an IP literal; it is validated before any session opens so that
// unvalidated text never reaches the device command line.
type Ping struct {
	dialer  netdev.Dialer
	profile netdev.DeviceProfile
}

func NewPing(dialer netdev.Dialer, profile netdev.DeviceProfile) *Ping {
	return &Ping{dialer: dialer, profile: profile}
}

func (p *Ping) Name() string { return "ping" }
func (p *Ping) Description() string {
	return "Ping an IPv4 or IPv6 address from the router and return the loss/latency summary."
}

func (p *Ping) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"target": map[string]any{
				"type":        "string",
				"description": "Destination IPv4 or IPv6 address",
			},
		},
		"required":             []string{"target"},
		"additionalProperties": false,
	}
}

func (p *Ping) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Target string `json:"target"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing ping input: %w", err)
	}

	addr, err := netip.ParseAddr(args.Target)
	if err != nil || addr.Zone() != "" {
		return "", validationf("target must be an IPv4 or IPv6 address literal, got %q", args.Target)
	}

	cmd := "ping " + addr.String()
	if addr.Is6() && !addr.Is4In6() {
		cmd = "ping ipv6 " + addr.String()
	}

	slog.Debug("ping: running", "host", p.profile.Host, "target", addr.String())

	out, err := netdev.WithSession(ctx, p.dialer, p.profile, func(s netdev.Session) (string, error) {
		return s.Run(ctx, cmd)
	})
	if err != nil {
		return "", err
	}
	return truncate(out), nil
}
