package config

import (
	"fmt"
	"os"

	"torii/internal/netdev"

	"gopkg.in/yaml.v3"
)

type deviceRecord struct {
	DeviceType string `yaml:"device_type"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Secret     string `yaml:"secret"`
	KnownHosts string `yaml:"known_hosts"`
}

// LoadDeviceProfile resolves the device to manage: the first usable
// record of the yaml inventory, else the DEVICE_* environment
// variables. A failure here is a startup failure — tools are never
// exposed without a valid profile.
func LoadDeviceProfile(inventoryPath string) (netdev.DeviceProfile, error) {
	if inventoryPath != "" {
		if _, err := os.Stat(inventoryPath); err == nil {
			profile, ok, err := deviceFromInventory(inventoryPath)
			if err != nil {
				return netdev.DeviceProfile{}, err
			}
			if ok {
				return profile, nil
			}
		}
	}

	profile := deviceFromEnv()
	if err := profile.Validate(); err != nil {
		return netdev.DeviceProfile{}, fmt.Errorf("no usable device record in %q or environment: %w", inventoryPath, err)
	}
	return profile, nil
}

func deviceFromInventory(path string) (netdev.DeviceProfile, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return netdev.DeviceProfile{}, false, fmt.Errorf("reading device inventory: %w", err)
	}

	var records []deviceRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return netdev.DeviceProfile{}, false, fmt.Errorf("parsing device inventory %s: %w", path, err)
	}

	for _, rec := range records {
		profile := rec.profile()
		if profile.Validate() == nil {
			return profile, true, nil
		}
	}
	return netdev.DeviceProfile{}, false, nil
}

func (r deviceRecord) profile() netdev.DeviceProfile {
	return netdev.DeviceProfile{
		DeviceType:     r.DeviceType,
		Host:           r.Host,
		Port:           r.Port,
		Username:       r.Username,
		Password:       r.Password,
		EnableSecret:   r.Secret,
		KnownHostsPath: r.KnownHosts,
		// Network devices are rarely in known_hosts; verify only when
		// an explicit file is configured.
		InsecureHostKey: r.KnownHosts == "",
	}
}

func deviceFromEnv() netdev.DeviceProfile {
	deviceType := os.Getenv("DEVICE_TYPE")
	if deviceType == "" {
		deviceType = "cisco_ios"
	}
	knownHosts := os.Getenv("DEVICE_KNOWN_HOSTS")
	return netdev.DeviceProfile{
		DeviceType:      deviceType,
		Host:            os.Getenv("DEVICE_HOST"),
		Port:            os.Getenv("DEVICE_PORT"),
		Username:        os.Getenv("DEVICE_USERNAME"),
		Password:        os.Getenv("DEVICE_PASSWORD"),
		EnableSecret:    os.Getenv("DEVICE_SECRET"),
		KnownHostsPath:  knownHosts,
		InsecureHostKey: knownHosts == "",
	}
}
