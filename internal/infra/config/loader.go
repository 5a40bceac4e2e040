// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/daisen/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Path to .daisen directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/daisen)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Merge order: default <- global <- project (later takes precedence).
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()
	for _, path := range []string{l.globalPath(), l.projectPath()} {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	sort.Strings(cfg.Warnings)
	return cfg, nil
}

// LoadGlobal returns the defaults overridden by the global configuration only.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()
	if err := applyFile(cfg, l.globalPath()); err != nil {
		return nil, err
	}
	sort.Strings(cfg.Warnings)
	return cfg, nil
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

func (l *Loader) projectPath() string {
	if l.projectDir == "" {
		return ""
	}
	return filepath.Join(l.projectDir, domain.ConfigFileName)
}

// applyFile overlays the keys present in path onto cfg. A missing file is
// not an error.
func applyFile(cfg *domain.Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Warnings = append(cfg.Warnings, applyRaw(cfg, raw)...)
	return nil
}

// applyRaw overlays a decoded TOML document onto cfg and returns warnings
// for unknown or mistyped keys. Only keys present in raw are changed.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		s := sectionReader{name: section, values: m}
		switch section {
		case "trace":
			s.str("source", &cfg.Trace.Source)
			s.str("path", &cfg.Trace.Path)
			s.str("url", &cfg.Trace.URL)
			s.number("requests_per_second", &cfg.Trace.RequestsPerSecond)
			s.integer("timeout_ms", &cfg.Trace.TimeoutMS)
		case "layout":
			s.number("padding_threshold", &cfg.Layout.PaddingThreshold)
			s.number("thick_ratio", &cfg.Layout.ThickRatio)
			s.number("thin_ratio", &cfg.Layout.ThinRatio)
			s.number("min_lane_height", &cfg.Layout.MinLaneHeight)
			s.number("min_visible_size", &cfg.Layout.MinVisibleSize)
		case "gesture":
			s.integer("settle_ms", &cfg.Gesture.SettleMS)
			s.number("drag_threshold", &cfg.Gesture.DragThreshold)
			s.number("zoom_base", &cfg.Gesture.ZoomBase)
			s.number("wheel_step", &cfg.Gesture.WheelStep)
		case "view":
			s.number("cell_width", &cfg.View.CellWidth)
			s.number("cell_height", &cfg.View.CellHeight)
			s.boolean("component_pane", &cfg.View.ComponentPane)
			s.boolean("resume", &cfg.View.Resume)
		case "log":
			s.str("level", &cfg.Log.Level)
			s.str("dir", &cfg.Log.Dir)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		warnings = append(warnings, s.warnings()...)
	}
	return warnings
}

// sectionReader consumes the keys of one TOML table.
type sectionReader struct {
	values  map[string]any
	seen    map[string]bool
	name    string
	invalid []string
}

func (s *sectionReader) take(key string) (any, bool) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[key] = true
	v, ok := s.values[key]
	return v, ok
}

func (s *sectionReader) str(key string, dst *string) {
	v, ok := s.take(key)
	if !ok {
		return
	}
	if str, ok := v.(string); ok {
		*dst = str
		return
	}
	s.invalid = append(s.invalid, key)
}

func (s *sectionReader) boolean(key string, dst *bool) {
	v, ok := s.take(key)
	if !ok {
		return
	}
	if b, ok := v.(bool); ok {
		*dst = b
		return
	}
	s.invalid = append(s.invalid, key)
}

func (s *sectionReader) number(key string, dst *float64) {
	v, ok := s.take(key)
	if !ok {
		return
	}
	switch n := v.(type) {
	case float64:
		*dst = n
	case int64:
		*dst = float64(n)
	default:
		s.invalid = append(s.invalid, key)
	}
}

func (s *sectionReader) integer(key string, dst *int) {
	v, ok := s.take(key)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int64:
		*dst = int(n)
	case float64:
		if n == float64(int(n)) {
			*dst = int(n)
			return
		}
		s.invalid = append(s.invalid, key)
	default:
		s.invalid = append(s.invalid, key)
	}
}

func (s *sectionReader) warnings() []string {
	var out []string
	for k := range s.values {
		if !s.seen[k] {
			out = append(out, fmt.Sprintf("unknown key in [%s]: %s", s.name, k))
		}
	}
	for _, k := range s.invalid {
		out = append(out, fmt.Sprintf("invalid value in [%s]: %s", s.name, k))
	}
	return out
}
