package cmd

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

// loadConfig loads the configuration named by --config, or the first one
// discovered under --path. Without a file the project record is used.
// The returned source is the file path, or "default".
func loadConfig() (*config.Config, string, error) {
	path := flagConfig
	if path == "" {
		found, err := config.Discover(flagPath)
		if err != nil {
			return nil, "", fmt.Errorf("searching for configuration: %w", err)
		}
		path = found
	}

	if path == "" {
		logger := log.WithComponent("cli")
		logger.Debug().Str("dir", flagPath).Msg("no configuration file found, using the project record")
		return config.Default(), "default", nil
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		if errors.Is(err, config.ErrScriptConfig) {
			return nil, "", fmt.Errorf("%w; move the configuration to .releaserc.json or pass --config", err)
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// effectiveConfig layers a loaded configuration over the engine defaults,
// filling the top-level keys the file leaves unset.
func effectiveConfig(cfg *config.Config) (*config.Config, error) {
	return config.NewBuilder().Add(cfg).Build()
}
