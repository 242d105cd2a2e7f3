package tools

import (
	"context"
	"log/slog"

	"torii/internal/netdev"
)

const showVersionCmd = "show version"

// Version reports the device's software version information.
type Version struct {
	dialer  netdev.Dialer
	profile netdev.DeviceProfile
}

func NewVersion(dialer netdev.Dialer, profile netdev.DeviceProfile) *Version {
	return &Version{dialer: dialer, profile: profile}
}

func (v *Version) Name() string { return "get_version" }
func (v *Version) Description() string {
	return "Run 'show version' on the router and return its raw output. Takes no arguments."
}

func (v *Version) InputSchema() any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"required":             []string{},
		"additionalProperties": false,
	}
}

func (v *Version) Execute(ctx context.Context, input string) (string, error) {
	slog.Debug("get_version: running", "host", v.profile.Host)

	out, err := netdev.WithSession(ctx, v.dialer, v.profile, func(s netdev.Session) (string, error) {
		return s.Run(ctx, showVersionCmd)
	})
	if err != nil {
		return "", err
	}
	return truncate(out), nil
}
