package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridsnap/grid"
	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/placement"

	"github.com/mitchellh/go-homedir"
)

const (
	ConfigFileName = "config.json"

	defaultTimeoutSeconds = 30
	maxTimeoutSeconds     = 600
)

// ErrInvalidTimeout is returned for a timeout outside 1..600 seconds.
var ErrInvalidTimeout = errors.New("invalid timeout")

// GetConfigDir returns the path to the application's configuration directory.
// It uses the same home directory that ~ expands to.
func GetConfigDir() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gridsnap"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultGrid applies to monitors without an entry in Grids. It is clamped
	// to what each monitor can hold. The zero value picks 3x2 for landscape
	// and 2x3 for portrait monitors.
	DefaultGrid grid.Shape `json:"default_grid"`
	// Grids are per-monitor overrides keyed by monitor ID. They are not
	// clamped: a shape that does not fit is a configuration error.
	Grids map[monitor.ID]grid.Shape `json:"grids,omitempty"`
	// GridRules match monitors by name. The first match wins and an ID
	// override in Grids beats any rule.
	GridRules []GridRule `json:"grid_rules,omitempty"`
	// Gaps controls the inset applied to placed windows.
	Gaps placement.Gaps `json:"gaps"`
	// TimeoutSeconds cancels a selection after this long without input.
	TimeoutSeconds int `json:"timeout_seconds"`
	// ApplyConstraints clamps placements to the active window's size limits.
	ApplyConstraints bool `json:"apply_constraints"`
	// LayoutFile points at a YAML monitor fixture used instead of querying
	// the platform. Relative paths resolve against the config directory.
	LayoutFile string `json:"layout_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Gaps: placement.Gaps{
			Enabled:      false,
			SizePx:       8,
			ScreenEdges:  true,
			BetweenCells: true,
		},
		TimeoutSeconds:   defaultTimeoutSeconds,
		ApplyConstraints: true,
	}
}

// Timeout returns the session timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GridFor returns the grid shape for one monitor.
func (c *Config) GridFor(d monitor.Descriptor) (grid.Shape, error) {
	if s, ok := c.Grids[d.ID]; ok {
		return s, grid.Validate(s, d.WorkArea)
	}
	rule, ok, err := matchRule(c.GridRules, d.Name)
	if err != nil {
		return grid.Shape{}, err
	}
	if ok {
		return rule.Grid, grid.Validate(rule.Grid, d.WorkArea)
	}
	want := c.DefaultGrid
	if want == (grid.Shape{}) {
		want = grid.DefaultShape(d.WorkArea)
	}
	return grid.FitShape(want, d.WorkArea)
}

// BuildGrids builds one grid per monitor of layout.
func (c *Config) BuildGrids(layout *monitor.Layout) (grid.Set, error) {
	set := make(grid.Set, layout.Len())
	for _, d := range layout.Ordered() {
		shape, err := c.GridFor(d)
		if err != nil {
			return nil, fmt.Errorf("monitor %s: %w", d.ID.Short(), err)
		}
		g, err := grid.New(shape, d.WorkArea)
		if err != nil {
			return nil, fmt.Errorf("monitor %s: %w", d.ID.Short(), err)
		}
		log.LayoutTrace("monitor %s: %s grid over %s", d.ID.Short(), shape, d.WorkArea)
		set[d.ID] = g
	}
	return set, nil
}

// Validate checks the configuration against a monitor layout. Overrides for
// monitors that are not connected are skipped.
func (c *Config) Validate(layout *monitor.Layout) error {
	var errs []error
	if err := c.Gaps.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.TimeoutSeconds < 0 || c.TimeoutSeconds > maxTimeoutSeconds {
		errs = append(errs, fmt.Errorf("%w: %ds (want 1..%d)", ErrInvalidTimeout, c.TimeoutSeconds, maxTimeoutSeconds))
	}
	if c.DefaultGrid != (grid.Shape{}) && !c.DefaultGrid.Valid() {
		errs = append(errs, fmt.Errorf("default grid: %w: %s", grid.ErrInvalidShape, c.DefaultGrid))
	}
	for _, r := range c.GridRules {
		if _, err := r.compile(); err != nil {
			errs = append(errs, err)
		}
	}
	if layout != nil {
		for _, d := range layout.Ordered() {
			if _, err := c.GridFor(d); err != nil {
				errs = append(errs, fmt.Errorf("monitor %s: %w", d.ID.Short(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// ResolveLayoutFile returns LayoutFile as an absolute path, or "" when unset.
// A leading ~ expands to the home directory.
func (c *Config) ResolveLayoutFile() (string, error) {
	if c.LayoutFile == "" {
		return "", nil
	}
	path, err := homedir.Expand(c.LayoutFile)
	if err != nil {
		return "", fmt.Errorf("failed to expand layout file: %w", err)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

// ConfigPath returns the path of the config file.
func ConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

func LoadConfig() *Config {
	configPath, err := ConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Keep the broken file around before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
