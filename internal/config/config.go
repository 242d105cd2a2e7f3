package config

import (
	"os"
	"path/filepath"

	"torii/internal/tools"
	"torii/internal/trace"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Trace    trace.Config   `toml:"trace"`
	Devices  DevicesConfig  `toml:"devices"`
	Commands CommandsConfig `toml:"commands"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type DevicesConfig struct {
	// Inventory is the path to the ordered device list. The first
	// usable record wins; environment variables are the fallback.
	Inventory string `toml:"inventory"`
}

type CommandsConfig struct {
	// RouteProto maps "protocol/state" pairs to device commands. Pairs
	// not listed here are rejected at validation time.
	RouteProto map[string]string `toml:"route_proto"`
}

// Load resolves defaults, then an optional config file, then the
// environment. The result is immutable for the process lifetime.
func Load() (*Config, error) {
	cfg := &Config{
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Devices: DevicesConfig{
			Inventory: "devices.yaml",
		},
		Commands: CommandsConfig{
			RouteProto: tools.DefaultRouteProtoCmds(),
		},
	}

	path := configPath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

func configPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "torii", "config.toml")
}
