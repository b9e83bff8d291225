// Package rmwconfig loads process-level configuration for the
// discovery graph support library: the default enclave label used by
// callers that add endpoints without an explicit participant, whether
// node-name introspection includes enclave labels, and whether
// unknown demangled-topic entries are dropped silently or logged.
//
// Configuration layers a YAML file with environment variable
// overrides through github.com/spf13/viper, the way the teacher's
// internal/config package layers config.yaml with BEADS_*
// environment variables.
package rmwconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DemangleMode controls how get_names_and_types-family queries treat
// a topic whose demangling function returned the empty string.
type DemangleMode string

const (
	// DemangleModeSoft silently drops entries whose demangled name is
	// empty. This is the spec default.
	DemangleModeSoft DemangleMode = "soft"
	// DemangleModeStrict logs every dropped entry at Info level,
	// mirroring internal/gate/policy.go's strict gate mode.
	DemangleModeStrict DemangleMode = "strict"
)

// Config is the process-level configuration for a graph cache
// instance.
type Config struct {
	// DefaultEnclave is the enclave label configured for participants
	// added without an explicit one. It is only loaded here; graphcache
	// and cmd/graphdump do not apply it to any participant.
	DefaultEnclave string `mapstructure:"default-enclave" yaml:"default-enclave"`
	// NodeNamesIncludeEnclaves is loaded from configuration but not
	// consulted: GetNodeNames always reports each node's enclave in its
	// own field and never prefixes node names with it.
	NodeNamesIncludeEnclaves bool `mapstructure:"node-names-include-enclaves" yaml:"node-names-include-enclaves"`
	// DemangleMode selects soft or strict handling of empty demangle
	// results.
	DemangleMode DemangleMode `mapstructure:"demangle-mode" yaml:"demangle-mode"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		DefaultEnclave:           "/",
		NodeNamesIncludeEnclaves: false,
		DemangleMode:             DemangleModeSoft,
	}
}

// EnvPrefix is the environment variable prefix viper watches for
// overrides, e.g. RMW_DEFAULT_ENCLAVE.
const EnvPrefix = "RMW"

// Load reads configuration from path (a graphcache.yaml file),
// layering environment variable overrides on top, and falls back to
// Default for any field neither source sets. A missing file is not an
// error — it is treated the same as an empty one.
func Load(path string) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("default-enclave", def.DefaultEnclave)
	v.SetDefault("node-names-include-enclaves", def.NodeNamesIncludeEnclaves)
	v.SetDefault("demangle-mode", string(def.DemangleMode))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("rmwconfig: reading %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("rmwconfig: unmarshal: %w", err)
	}
	if cfg.DemangleMode != DemangleModeStrict {
		cfg.DemangleMode = DemangleModeSoft
	}
	return cfg, nil
}

// WriteDefault marshals Default() to path as YAML, for `graphdump
// config init` to scaffold a starter graphcache.yaml a site can then
// hand-edit. It overwrites any file already at path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("rmwconfig: marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rmwconfig: writing %s: %w", path, err)
	}
	return nil
}
