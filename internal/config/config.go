// Package config loads the launcher's own settings and validates the sync
// program's configuration file.
//
// The two are deliberately separate: Settings belong to the launcher and
// come from defaults, an optional syncrun.yaml and SYNCRUN_* environment
// variables; config.json belongs to the sync program and the launcher's
// run path only ever checks that it exists. Parsing config.json is the
// doctor command's job.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/imcbsglobal/syncrun/internal/launcher"
)

// File names from the stock distribution layout: everything sits next to
// the launcher in its working directory.
const (
	DefaultExecPath   = "sync.exe"
	DefaultConfigPath = "config.json"
	DefaultLogPath    = "sync.log"
)

// SettingsName is the base name of the launcher's optional settings file
// (syncrun.yaml), looked up in the working directory.
const SettingsName = "syncrun"

const envPrefix = "SYNCRUN"

// Settings holds the launcher's knobs. Every field has a working default,
// so a bare double-click on the binary behaves like the original launcher.
type Settings struct {
	ExecPath     string        `mapstructure:"exec"`
	ConfigPath   string        `mapstructure:"config"`
	LogPath      string        `mapstructure:"log"`
	SuccessPause time.Duration `mapstructure:"success_pause"`
	FailurePause time.Duration `mapstructure:"failure_pause"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Follow       bool          `mapstructure:"follow"`
	DebugLog     string        `mapstructure:"debug_log"`
}

// NewViper returns a viper instance with defaults, environment lookup and
// the optional settings file wired. Flag bindings are layered on by the CLI.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("exec", DefaultExecPath)
	v.SetDefault("config", DefaultConfigPath)
	v.SetDefault("log", DefaultLogPath)
	v.SetDefault("success_pause", launcher.DefaultSuccessPause)
	v.SetDefault("failure_pause", launcher.DefaultFailurePause)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("follow", false)
	v.SetDefault("debug_log", "")

	v.SetConfigName(SettingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads Settings out of v. A missing settings file is fine; a
// malformed one is an error.
func Load(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	return s, nil
}
