package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nekodev/skillring/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKILLRING_"

// Load layers defaults, the YAML file at path (or SKILLRING_CONFIG when
// path is empty) and SKILLRING_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config file %s", path)
		}
	}

	// SKILLRING_SESSION_TTL -> session_ttl. Keys are flat, so the delimiter
	// never splits them.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "environment")
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
