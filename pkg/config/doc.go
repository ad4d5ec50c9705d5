// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tags. Each configuration type is
// parsed once and cached for the lifetime of the process:
//
//	type ServerConfig struct {
//	    Addr   string         `env:"HTTP_ADDR" envDefault:":8080"`
//	    Alerts alert.Defaults
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Load reads the default .env file on first use when it exists. LoadEnv
// loads specific files instead. ResetCache drops cached values, which is
// useful in tests that change the environment.
package config
