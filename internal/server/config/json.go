package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/adminvote/internal/flagx"
	"github.com/dmitrijs2005/adminvote/internal/timex"
)

// JSONConfig is the on-disk shape of the configuration file. Fields left out
// of the file keep the value they already had in Config.
type JSONConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AppEnv                      *string         `json:"app_env"`
	DecisionStrategy            *string         `json:"decision_strategy"`
	AllowIfAllAbstain           *bool           `json:"allow_if_all_abstain"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJSON loads the file named by -c/-config, if any, into config.
func parseJSON(config *Config, args []string) error {
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

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.AppEnv != nil {
		config.AppEnv = *c.AppEnv
	}
	if c.DecisionStrategy != nil {
		config.DecisionStrategy = *c.DecisionStrategy
	}
	if c.AllowIfAllAbstain != nil {
		config.AllowIfAllAbstain = *c.AllowIfAllAbstain
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	return nil
}
