// Package config loads the configuration of the command line tool from
// flags, GRAPHSTATE_ environment variables and an optional .env file.
package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"graphstate/internal/logger"
)

// EnvPrefix prefixes every environment variable, e.g. GRAPHSTATE_LOG_LEVEL.
const EnvPrefix = "GRAPHSTATE"

// Config holds the configuration of the command line tool.
type Config struct {
	// Log holds the logger configuration.
	Log logger.Config `mapstructure:"log"`
	// ReferenceHandling overrides the policy of the settings file when set.
	ReferenceHandling string `mapstructure:"reference_handling"`
	// Settings is the path of a settings file.
	Settings string `mapstructure:"settings"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":          "log.level",
	"log-format":         "log.format",
	"reference-handling": "reference_handling",
	"settings":           "settings",
}

// Load reads the configuration. dir holds the optional .env file; flags
// that were set take precedence over the environment.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	// a missing .env file is not an error
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindValues registers every mapstructure key of the struct with its
// default tag, so AutomaticEnv can find it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
