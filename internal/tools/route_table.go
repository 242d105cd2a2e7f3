package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"torii/internal/netdev"
)

var routeTableCmds = map[string]string{
	"ipv4": "show ip route",
	"ipv6": "show ipv6 route",
}

// RouteTable fetches the routing table for one address family.
type RouteTable struct {
	dialer  netdev.Dialer
	profile netdev.DeviceProfile
}

func NewRouteTable(dialer netdev.Dialer, profile netdev.DeviceProfile) *RouteTable {
	return &RouteTable{dialer: dialer, profile: profile}
}

func (r *RouteTable) Name() string { return "get_route_table" }
func (r *RouteTable) Description() string {
	return "Show the router's IPv4 or IPv6 routing table."
}

func (r *RouteTable) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"family": map[string]any{
				"type":        "string",
				"enum":        []string{"ipv4", "ipv6"},
				"description": "Address family of the routing table",
			},
		},
		"required":             []string{"family"},
		"additionalProperties": false,
	}
}

func (r *RouteTable) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Family string `json:"family"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing get_route_table input: %w", err)
	}

	cmd, ok := routeTableCmds[args.Family]
	if !ok {
		return "", validationf("family must be 'ipv4' or 'ipv6', got %q", args.Family)
	}

	slog.Debug("get_route_table: running", "host", r.profile.Host, "family", args.Family)

	out, err := netdev.WithSession(ctx, r.dialer, r.profile, func(s netdev.Session) (string, error) {
		return s.Run(ctx, cmd)
	})
	if err != nil {
		return "", err
	}
	return truncate(out), nil
}
