package netdev

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultPort           = "22"
	DefaultConnectTimeout = 15 * time.Second
	DefaultReadTimeout    = 30 * time.Second
)

// DeviceProfile holds the connection parameters for one managed device.
// It is resolved once at startup and treated as immutable afterwards.
type DeviceProfile struct {
	DeviceType     string
	Host           string
	Port           string
	Username       string
	Password       string
	EnableSecret   string
	KnownHostsPath string
	// InsecureHostKey disables host key verification. Network devices are
	// rarely in known_hosts, so inventories usually set this.
	InsecureHostKey bool
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
}

// Validate reports the profile fields that are missing. A profile that
// fails validation must never reach a dialer.
func (p DeviceProfile) Validate() error {
	var missing []string
	if p.DeviceType == "" {
		missing = append(missing, "device_type")
	}
	if p.Host == "" {
		missing = append(missing, "host")
	}
	if p.Username == "" {
		missing = append(missing, "username")
	}
	if p.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing device parameters: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (p DeviceProfile) port() string {
	if p.Port == "" {
		return DefaultPort
	}
	return p.Port
}

func (p DeviceProfile) connectTimeout() time.Duration {
	if p.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return p.ConnectTimeout
}

func (p DeviceProfile) readTimeout() time.Duration {
	if p.ReadTimeout <= 0 {
		return DefaultReadTimeout
	}
	return p.ReadTimeout
}
