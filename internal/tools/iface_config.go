package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"torii/internal/netdev"
)

const (
	stateShutdown   = "shutdown"
	stateNoShutdown = "no-shutdown"
)

var (
	// Device-native interface names: "GigabitEthernet0/1", "Vlan10",
	// "Port-channel2", "TenGigE0/0/0/0". Anything else never reaches
	// the device command line.
	ifaceNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-]*[0-9](/[0-9]+)*(\.[0-9]+)?$`)
	// An admin-down interface carries a bare "shutdown" line in its
	// running config.
	shutdownLineRe = regexp.MustCompile(`(?m)^\s*shutdown\s*$`)
)

// IfaceConfig sets an interface's administrative state. It reads the
// current state first and skips the write when nothing would change, so
// repeated identical calls never reapply the command.
type IfaceConfig struct {
	dialer  netdev.Dialer
	profile netdev.DeviceProfile
}

func NewIfaceConfig(dialer netdev.Dialer, profile netdev.DeviceProfile) *IfaceConfig {
	return &IfaceConfig{dialer: dialer, profile: profile}
}

func (i *IfaceConfig) Name() string { return "iface_config" }
func (i *IfaceConfig) Description() string {
	return "Shut or no-shut a router interface. Checks the current state first and does nothing if it already matches."
}

func (i *IfaceConfig) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"interface": map[string]any{
				"type":        "string",
				"description": "Interface name in device-native form, e.g. 'GigabitEthernet0/1'",
			},
			"state": map[string]any{
				"type":        "string",
				"enum":        []string{stateShutdown, stateNoShutdown},
				"description": "Desired administrative state",
			},
		},
		"required":             []string{"interface", "state"},
		"additionalProperties": false,
	}
}

func (i *IfaceConfig) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Interface string `json:"interface"`
		State     string `json:"state"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing iface_config input: %w", err)
	}

	if !ifaceNameRe.MatchString(args.Interface) {
		return "", validationf("invalid interface name %q", args.Interface)
	}
	if args.State != stateShutdown && args.State != stateNoShutdown {
		return "", validationf("state must be %q or %q, got %q", stateShutdown, stateNoShutdown, args.State)
	}
	wantShut := args.State == stateShutdown

	slog.Debug("iface_config: running", "host", i.profile.Host, "interface", args.Interface, "state", args.State)

	return netdev.WithSession(ctx, i.dialer, i.profile, func(s netdev.Session) (string, error) {
		current, err := s.Run(ctx, "show running-config interface "+args.Interface)
		if err != nil {
			return "", err
		}

		if shutdownLineRe.MatchString(current) == wantShut {
			slog.Debug("iface_config: already in desired state", "interface", args.Interface)
			return fmt.Sprintf("[skip] %s is already %s", args.Interface, args.State), nil
		}

		cmd := "no shutdown"
		if wantShut {
			cmd = "shutdown"
		}
		if _, err := s.Configure(ctx, "interface "+args.Interface, cmd); err != nil {
			return "", err
		}
		return fmt.Sprintf("[ok] %s set to %s", args.Interface, args.State), nil
	})
}
