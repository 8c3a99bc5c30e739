package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/adminvote/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-n string   environment tag ("production", "staging", ...)
//	-m string   decision strategy
//	-x bool     grant when every voter abstains
//	-l string   log level ("debug", "info", "warn", "error")
//
// Only the flags listed above are taken from args; everything else is left
// for other parsers (e.g. -c for the JSON file).
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-n", "-m", "-x", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.AppEnv, "n", config.AppEnv, "environment tag")
	fs.StringVar(&config.DecisionStrategy, "m", config.DecisionStrategy, "decision strategy")
	fs.BoolVar(&config.AllowIfAllAbstain, "x", config.AllowIfAllAbstain, "grant when all voters abstain")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	return nil
}
