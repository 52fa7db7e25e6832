// Package settings manages the application configuration registry: a
// table of defaults surfaced through viper, a config file, and REEL_*
// environment variables.
package settings

import (
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/openreelio/reel/cmd/reel/internal/fsys"
)

// envPrefix namespaces environment bindings (REEL_LOGS_LEVEL, ...).
const envPrefix = "REEL"

// EnvKeyReplacer normalizes configuration keys into environment variable
// naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Field is one entry of the configuration registry.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable name for this field.
func (f Field) Env() string {
	return envPrefix + "_" + strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
}

// Current returns the effective value after config and env overrides.
func (f Field) Current() any {
	return viper.Get(f.Key)
}

var registry = make(map[string]Field)

func register(key string, value any, description string) {
	if _, exists := registry[key]; exists {
		panic("duplicate settings key: " + key)
	}
	registry[key] = Field{Key: key, Value: value, Description: description}
}

func init() {
	register(LogsLevel, "info", "Log verbosity: panic, fatal, error, warn, info, debug, trace")
	register(LogsJSON, false, "Emit logs as JSON instead of text")
	register(LogsFile, "", "Append logs to this file instead of stderr")
	register(CliColored, true, "Enable colored CLI output")
	register(PlayStepFPS, 30.0, "Frame rate used for single-frame stepping")
	register(PlayTargetFPS, 0.0, "Throttle tick processing to this rate (0 disables)")
	register(PlaySeekStep, 5.0, "Seconds moved by a seek key press")
	register(ServeAddress, ":7474", "Listen address of the remote bridge")
}

// All returns every registered field sorted by key.
func All() []Field {
	fields := make([]Field, 0, len(registry))
	for _, f := range registry {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

// Setup initializes viper: defaults from the registry, REEL_* env
// bindings, and an optional reel config file. An explicit configFile
// wins over discovery; a missing discovered file is not an error.
func Setup(configFile string) error {
	viper.SetFs(fsys.API())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.AutomaticEnv()

	viper.SetTypeByDefaultValue(true)
	for key, field := range registry {
		viper.SetDefault(key, field.Value)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("reel")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}
