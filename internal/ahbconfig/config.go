// SPDX-License-Identifier: Apache-2.0

// Package ahbconfig loads process configuration the way cmd/holomush
// wires its koanf stack: a YAML file as the base layer, CLI flags
// overlaid on top, merged into one typed Config. The only thing an
// ahbicht process needs to know from config is its listen addresses and
// which (edifact_format, format_version) pairs it serves — the logic
// bundle for each pair is still wired in Go code, since ahbsdk traits
// are interfaces, not config-describable values.
package ahbconfig

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
)

// ServedPair names one (edifact_format, format_version) pair a process
// registers a logic bundle for.
type ServedPair struct {
	Format  string `koanf:"format"`
	Version string `koanf:"version"`
}

// Config is the merged, typed view of an ahbicht process's settings.
type Config struct {
	ListenAddr  string       `koanf:"listen_addr"`
	MetricsAddr string       `koanf:"metrics_addr"`
	Served      []ServedPair `koanf:"served"`
}

// defaults seeds a Config with the values used when neither the file
// nor the flags set them.
func defaults() *Config {
	return &Config{
		ListenAddr:  ":8443",
		MetricsAddr: ":9090",
	}
}

// Load merges defaults, the YAML file at path (if path is non-empty; a
// path that cannot be read is an error), and flags (if non-nil) into one
// Config, in that precedence order.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()
	if err := k.Load(structProvider(cfg), nil); err != nil {
		return nil, ahberr.EvaluatorFailure("config.defaults", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, ahberr.EvaluatorFailure("config.file:"+path, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, ahberr.EvaluatorFailure("config.flags", err)
		}
	}

	out := &Config{}
	if err := k.Unmarshal("", out); err != nil {
		return nil, ahberr.EvaluatorFailure("config.unmarshal", err)
	}
	return out, nil
}

// structProvider adapts an already-populated *Config into a
// koanf.Provider so defaults merge through the same Load pipeline as
// the file and flag layers, instead of being a special case.
type structProviderType struct{ cfg *Config }

func structProvider(cfg *Config) *structProviderType {
	return &structProviderType{cfg: cfg}
}

func (s *structProviderType) ReadBytes() ([]byte, error) {
	return nil, nil
}

func (s *structProviderType) Read() (map[string]interface{}, error) {
	return map[string]interface{}{
		"listen_addr":  s.cfg.ListenAddr,
		"metrics_addr": s.cfg.MetricsAddr,
	}, nil
}
