// Package config resolves process settings from a base YAML file merged
// with LLMTERM_* environment overrides. Environment wins; the merge is
// shallow, keyed by dotted path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// ParseError reports a base settings file that exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("settings file %s is malformed: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Config is the resolved process configuration. It is read-only after Load
// and safe to share across goroutines.
type Config struct {
	v *viper.Viper
}

// EnvPrefix is the prefix for environment overrides: the dotted key
// model.max_tokens maps to LLMTERM_MODEL_MAX_TOKENS.
const EnvPrefix = "LLMTERM"

// Load reads the base settings file at path and wires environment
// overrides. A missing base file is not an error (environment-only
// configuration stays usable); a present but unparsable file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The SDK ecosystem standardised on the bare ANTHROPIC_API_KEY name,
	// so honour it alongside the prefixed form.
	_ = v.BindEnv("anthropic.api_key", "LLMTERM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &pathErr), errors.As(err, &notFound):
			// Absent base file: empty base mapping.
		default:
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace.root", ".")
	v.SetDefault("model.max_tokens", 1024)
	v.SetDefault("memory.history_budget", 20_000)
	v.SetDefault("telemetry.enabled", false)
}

// Get returns the value for a dotted key: environment override first, then
// base file, then baked-in default, then def.
func (c *Config) Get(key string, def any) any {
	if c.v.IsSet(key) {
		return c.v.Get(key)
	}
	return def
}

func (c *Config) GetString(key string) string { return c.v.GetString(key) }

func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }
