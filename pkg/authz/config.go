package authz

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/pkg/configuration"
)

// Config holds what NewService needs. An empty PolicyPath uses the
// compiled-in user type policy; a nil FlagProvider reads FlagPath and falls
// back to FlagMode when the file is missing.
type Config struct {
	PolicyPath   string
	FlagPath     string
	FlagMode     Mode
	Logger       *logrus.Logger
	FlagProvider FlagProvider
}

func (c Config) flags() FlagProvider {
	if c.FlagProvider != nil {
		return c.FlagProvider
	}
	if c.FlagPath == "" {
		return StaticFlagProvider(c.FlagMode)
	}
	return NewFileFlagProvider(filepath.Clean(c.FlagPath), c.FlagMode)
}

func (c Config) policyPath() string {
	if c.PolicyPath == "" {
		return ""
	}
	return filepath.Clean(c.PolicyPath)
}

// DefaultConfig reads AUTHZ_* from the process configuration.
func DefaultConfig() Config {
	return ConfigFrom(configuration.Use())
}

func ConfigFrom(cfg *configuration.Configuration) Config {
	return Config{
		PolicyPath: cfg.Authz.PolicyPath,
		FlagPath:   cfg.Authz.FlagConfigPath,
		FlagMode:   sanitizeMode(Mode(cfg.Authz.Mode)),
		Logger:     cfg.Logger(),
	}
}
