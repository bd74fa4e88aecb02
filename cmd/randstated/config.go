package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"xdao.co/randstate/identity"
)

// Config is the randstated daemon configuration.
type Config struct {
	Listen          string `toml:"listen"`
	Backend         string `toml:"backend"`
	DataDir         string `toml:"data_dir"`
	SystemPrincipal string `toml:"system_principal"`
	GenesisEpoch    uint64 `toml:"genesis_epoch"`
	LogLevel        string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Listen:   "127.0.0.1:7788",
		Backend:  "memory",
		LogLevel: "info",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if c.SystemPrincipal == "" {
		return errors.New("system_principal is required")
	}
	p := identity.Principal(c.SystemPrincipal)
	switch p.Alg() {
	case identity.AlgEd25519, identity.AlgDilithium3:
	default:
		return fmt.Errorf("system_principal has unsupported algorithm %q", p.Alg())
	}
	switch c.Backend {
	case "memory":
	case "localfs":
		if c.DataDir == "" {
			return errors.New("data_dir is required for the localfs backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
