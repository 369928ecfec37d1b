// Package config loads the YAML configuration shared by the caesar services.
package config

import (
	"context"
	"fmt"
	"os"

	"caesar/internal/ctxlog"
	"caesar/internal/server"
	"caesar/internal/store"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Server server.Config `yaml:"server"`
	DB     store.Config  `yaml:"db"`
}

// Load decodes filename strictly: unknown keys are errors.
func Load(ctx context.Context, filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	var config Config
	err = dec.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
