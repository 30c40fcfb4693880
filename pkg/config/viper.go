package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Options selects where configuration is read from.
type Options struct {
	// File is an explicit config file path. When set, the search paths are
	// ignored and a missing file is an error.
	File string
	// Paths are directories searched for Name.yaml, in order. Empty means
	// the working directory only.
	Paths []string
	// Name is the config file name without extension.
	Name string
	// EnvPrefix namespaces environment variables, e.g. SFID_ENUM_WORKERS.
	EnvPrefix string
}

// Load reads configuration from file and environment variables.
// A config file that cannot be found in the search paths is not an error;
// the returned viper then relies on defaults and the environment.
func Load(opts Options) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(opts.Name)
		paths := opts.Paths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return v, nil
}
