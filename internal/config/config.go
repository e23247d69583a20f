package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	API struct {
		Token string
	}
	CORS struct {
		Origins []string
	}
	RateLimit struct {
		PerMinute int
	}
	Env      string
	LogLevel string
}

// Production reports whether the service runs with production error masking.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads config from environment (MARKS_ prefix) and optional joe-marks.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("joe-marks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/joe-marks")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("env", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.per_minute", 0)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.API.Token = v.GetString("api.token")
	cfg.Env = v.GetString("env")
	cfg.LogLevel = v.GetString("log.level")
	cfg.RateLimit.PerMinute = v.GetInt("rate_limit.per_minute")

	// Comma-separated origin list; empty means CORS headers stay off.
	if raw := v.GetString("cors.origins"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.Origins = append(cfg.CORS.Origins, o)
			}
		}
	}

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("MARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("MARKS_DB_DSN is required")
	}
	if cfg.API.Token == "" {
		return nil, fmt.Errorf("MARKS_API_TOKEN is required")
	}

	return cfg, nil
}
