// Package config holds the CLI client configuration: defaults, an optional
// JSON file (-c/-config) and command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the adminvote CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC endpoint.
//   - RequestTimeout: deadline applied to every remote call.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config from defaults, JSON and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
