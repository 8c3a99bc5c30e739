package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/adminvote/internal/flagx"
	"github.com/dmitrijs2005/adminvote/internal/timex"
)

type JSONConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if c.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *c.ServerEndpointAddr
	}
	if c.RequestTimeout != nil {
		cfg.RequestTimeout = c.RequestTimeout.Duration
	}
	return nil
}
