// Package config loads platform defaults from the environment and an
// optional halyard.yml. The result is a plain value handed explicitly to
// every entry point; library code never reads configuration ambiently.
package config

import (
	"errors"

	"github.com/rs/zerolog/log"
	viper "github.com/spf13/viper"

	"github.com/halyard-cloud/halyard/core/state/app"
)

func loadEnv(v *viper.Viper) error {
	if err := v.BindEnv("halyard_path", "HALYARD_PATH"); err != nil {
		return err
	}
	v.SetDefault("halyard_path", "$HOME/.halyard")

	if err := v.BindEnv("defaults.backend", "HALYARD_DEFAULT_BACKEND"); err != nil {
		return err
	}

	v.SetDefault("defaults.backend", string(app.BackendNextGen))
	v.SetDefault("defaults.memory_mb", 1024)
	v.SetDefault("defaults.disk_quota_mb", 1024)
	v.SetDefault("defaults.instances", 1)
	v.SetDefault("defaults.min_memory_mb", 64)
	v.SetDefault("defaults.min_disk_quota_mb", 1)
	v.SetDefault("defaults.max_disk_quota_mb", 2048)
	v.SetDefault("defaults.max_health_check_timeout", 180)
	v.SetDefault("defaults.allow_ssh", true)
	v.SetDefault("defaults.custom_buildpacks_enabled", true)
	v.SetDefault("defaults.stack_name", "cflinuxfs4")
	return nil
}

// PlatformDefaults resolves the platform-wide process defaults. A missing
// config file is fine; the built-in defaults apply.
func PlatformDefaults() (app.PlatformDefaults, error) {
	v := viper.New()
	if err := loadEnv(v); err != nil {
		return app.PlatformDefaults{}, err
	}

	v.AddConfigPath(".")
	v.AddConfigPath(v.GetString("halyard_path"))
	v.SetConfigType("yml")
	v.SetConfigName("halyard")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return app.PlatformDefaults{}, err
		}
	} else {
		log.Debug().Msgf("Loaded platform config from %s", v.ConfigFileUsed())
	}

	var defaults app.PlatformDefaults
	if err := v.UnmarshalKey("defaults", &defaults); err != nil {
		return app.PlatformDefaults{}, err
	}
	// UnmarshalKey does not consult env bindings, Get does.
	defaults.Backend = app.Backend(v.GetString("defaults.backend"))
	return defaults, nil
}
