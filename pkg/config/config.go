package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/CoverConnect/egonet/pkg/logging"
)

const prefix = "egonet."

var defaultMap = map[string]string{
	"port":              "8888",
	"path":              "/ws",
	"otlpendpoint":      "",
	"loglevel":          "info",
	"idlethreshold":     "30s",
	"idlecheckinterval": "1s",
	"keepalive":         "8s",
	"timeout":           "12s",
	"queuesize":         "256",
	"readlimit":         "1048576",
	"name":              "",
}

var Config = viper.New()

// InitConfig loads defaults, the environment (EGONET_PORT and friends) and
// the optional config file at configPath.
func InitConfig(configPath string) {
	Reset()
	Config.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	Config.SetEnvKeyReplacer(replacer)
	if configPath == "" {
		return
	}
	Config.SetConfigFile(configPath)
	if err := Config.ReadInConfig(); err != nil {
		logger := logging.Component("config")
		logger.Warn().Err(err).Str("path", configPath).Msg("could not read config file")
	}
}

// Reset replaces Config with a fresh instance holding only the defaults.
func Reset() {
	Config = viper.New()
	for key, value := range defaultMap {
		Config.SetDefault(prefix+key, value)
	}
}

func String(key string) string { return Config.GetString(prefix + key) }

func Int(key string) int { return Config.GetInt(prefix + key) }

func Duration(key string) time.Duration { return Config.GetDuration(prefix + key) }

func Set(key string, value any) { Config.Set(prefix+key, value) }

func GetEnv(key string, fallback string) string {
	value, ok := os.LookupEnv(key)

	if !ok {
		return fallback
	}

	return value
}

func init() {
	Reset()
}
