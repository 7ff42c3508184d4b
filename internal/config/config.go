/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal, so older builds tolerate newer files.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

// EditorConfig seeds the interaction engines of a new session.
type EditorConfig struct {
	GridSize             int     `yaml:"grid_size"`
	SnapToGrid           bool    `yaml:"snap_to_grid"`
	ShowGrid             bool    `yaml:"show_grid"`
	DragActivationPixels float32 `yaml:"drag_activation_pixels"`
	TouchHoldDelayMs     int     `yaml:"touch_hold_delay_ms"`
	PalettePath          string  `yaml:"palette_path"` // empty = built-in catalog
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Editor        EditorConfig  `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Editor: EditorConfig{
			GridSize:             20,
			SnapToGrid:           false,
			ShowGrid:             true,
			DragActivationPixels: 4,
			TouchHoldDelayMs:     250,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn = "GPB_TELEMETRY_OPT_IN"
	EnvGridSize       = "GPB_GRID_SIZE"
	EnvSnapToGrid     = "GPB_SNAP_TO_GRID"
	EnvPalettePath    = "GPB_PALETTE_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GPB_LOG_LEVEL"
	EnvLogFormat = "GPB_LOG_FORMAT"
	EnvLogSource = "GPB_LOG_SOURCE"
	EnvLogFile   = "GPB_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoPageBuilder")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoPageBuilder")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gopagebuilder")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	// editor
	if src.Editor.GridSize > 0 {
		dst.Editor.GridSize = src.Editor.GridSize
	}
	dst.Editor.SnapToGrid = src.Editor.SnapToGrid
	dst.Editor.ShowGrid = src.Editor.ShowGrid
	if src.Editor.DragActivationPixels > 0 {
		dst.Editor.DragActivationPixels = src.Editor.DragActivationPixels
	}
	if src.Editor.TouchHoldDelayMs > 0 {
		dst.Editor.TouchHoldDelayMs = src.Editor.TouchHoldDelayMs
	}
	if strings.TrimSpace(src.Editor.PalettePath) != "" {
		dst.Editor.PalettePath = strings.TrimSpace(src.Editor.PalettePath)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = boolish(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvGridSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Editor.GridSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapToGrid)); v != "" {
		cfg.Editor.SnapToGrid = boolish(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPalettePath)); v != "" {
		cfg.Editor.PalettePath = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = boolish(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func boolish(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "editor.grid_size":
		if os.Getenv(EnvGridSize) != "" {
			return EnvGridSize, true
		}
	case "editor.snap_to_grid":
		if os.Getenv(EnvSnapToGrid) != "" {
			return EnvSnapToGrid, true
		}
	case "editor.palette_path":
		if os.Getenv(EnvPalettePath) != "" {
			return EnvPalettePath, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
