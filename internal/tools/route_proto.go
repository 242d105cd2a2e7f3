package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"torii/internal/netdev"
)

// DefaultRouteProtoCmds maps "protocol/state" pairs to the device command
// that reports them. The config file can override or extend the table;
// any pair absent from it is rejected before a session opens.
func DefaultRouteProtoCmds() map[string]string {
	return map[string]string{
		"bgp/neighbors":  "show ip bgp neighbors",
		"bgp/summary":    "show ip bgp summary",
		"ospf/neighbors": "show ip ospf neighbor",
		"ospf/summary":   "show ip ospf",
	}
}

// RouteProtoState inspects dynamic routing protocol state (BGP/OSPF
// neighbors or summary).
type RouteProtoState struct {
	dialer  netdev.Dialer
	profile netdev.DeviceProfile
	cmds    map[string]string
}

func NewRouteProtoState(dialer netdev.Dialer, profile netdev.DeviceProfile, cmds map[string]string) *RouteProtoState {
	if len(cmds) == 0 {
		cmds = DefaultRouteProtoCmds()
	}
	return &RouteProtoState{dialer: dialer, profile: profile, cmds: cmds}
}

func (r *RouteProtoState) Name() string { return "get_route_proto_state" }
func (r *RouteProtoState) Description() string {
	return "Show dynamic routing protocol state: BGP or OSPF, neighbors or summary."
}

func (r *RouteProtoState) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"protocol": map[string]any{
				"type":        "string",
				"enum":        []string{"bgp", "ospf"},
				"description": "Routing protocol to inspect",
			},
			"state": map[string]any{
				"type":        "string",
				"enum":        []string{"neighbors", "summary"},
				"description": "Which view of the protocol state to show",
			},
		},
		"required":             []string{"protocol", "state"},
		"additionalProperties": false,
	}
}

func (r *RouteProtoState) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Protocol string `json:"protocol"`
		State    string `json:"state"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing get_route_proto_state input: %w", err)
	}

	key := args.Protocol + "/" + args.State
	cmd, ok := r.cmds[key]
	if !ok {
		return "", validationf("unsupported protocol/state pair %q", key)
	}

	slog.Debug("get_route_proto_state: running", "host", r.profile.Host, "pair", key)

	out, err := netdev.WithSession(ctx, r.dialer, r.profile, func(s netdev.Session) (string, error) {
		return s.Run(ctx, cmd)
	})
	if err != nil {
		return "", err
	}
	return truncate(out), nil
}
