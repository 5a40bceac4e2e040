package domain

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config file and directory names.
const (
	AppDirName     = "daisen"
	ProjectDirName = ".daisen"
	ConfigFileName = "config.toml"
)

// Trace source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Trace    TraceConfig   `toml:"trace"`
	Layout   LayoutConfig  `toml:"layout"`
	Gesture  GestureConfig `toml:"gesture"`
	View     ViewConfig    `toml:"view"`
	Log      LogConfig     `toml:"log"`
}

// TraceConfig holds settings from the [trace] section.
type TraceConfig struct {
	Source            string  `toml:"source"`              // "file" or "http"
	Path              string  `toml:"path"`                // Trace file path (file source)
	URL               string  `toml:"url"`                 // Trace API base URL (http source)
	RequestsPerSecond float64 `toml:"requests_per_second"` // HTTP request rate limit
	TimeoutMS         int     `toml:"timeout_ms"`          // HTTP request timeout
}

// Timeout returns the HTTP timeout as a duration.
func (c TraceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LayoutConfig holds settings from the [layout] section.
type LayoutConfig struct {
	PaddingThreshold float64 `toml:"padding_threshold"` // Lane height above which ThickRatio applies
	ThickRatio       float64 `toml:"thick_ratio"`       // Bar/lane ratio for thick lanes
	ThinRatio        float64 `toml:"thin_ratio"`        // Bar/lane ratio for thin lanes
	MinLaneHeight    float64 `toml:"min_lane_height"`   // Deeper levels are abandoned below this
	MinVisibleSize   float64 `toml:"min_visible_size"`  // Non top-level bars smaller than this are hidden
}

// GestureConfig holds settings from the [gesture] section.
type GestureConfig struct {
	SettleMS      int     `toml:"settle_ms"`      // Debounce before a temporary shift is committed
	DragThreshold float64 `toml:"drag_threshold"` // Pixels a drag must move to count as moved
	ZoomBase      float64 `toml:"zoom_base"`      // Zoom factor per unit of wheel delta
	WheelStep     float64 `toml:"wheel_step"`     // Wheel delta reported per terminal wheel notch
}

// SettleDelay returns the debounce delay as a duration.
func (c GestureConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// ViewConfig holds settings from the [view] section.
type ViewConfig struct {
	CellWidth     float64 `toml:"cell_width"`     // Pixels per terminal column
	CellHeight    float64 `toml:"cell_height"`    // Pixels per terminal row
	ComponentPane bool    `toml:"component_pane"` // Show the component pane
	Resume        bool    `toml:"resume"`         // Reopen a trace at its last committed view
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Dir   string `toml:"dir"`   // Log directory (empty = state dir)
}

// Default configuration values.
const (
	DefaultTraceURL          = "http://localhost:3001"
	DefaultRequestsPerSecond = 10
	DefaultTimeoutMS         = 10000
	DefaultPaddingThreshold  = 10
	DefaultThickRatio        = 0.8
	DefaultThinRatio         = 0.6
	DefaultMinLaneHeight     = 2
	DefaultMinVisibleSize    = 1
	DefaultSettleMS          = 1000
	DefaultDragThreshold     = 1
	DefaultZoomBase          = 1.001
	DefaultWheelStep         = 100
	DefaultCellWidth         = 8
	DefaultCellHeight        = 16
	DefaultLogLevel          = "info"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Trace: TraceConfig{
			Source:            SourceFile,
			URL:               DefaultTraceURL,
			RequestsPerSecond: DefaultRequestsPerSecond,
			TimeoutMS:         DefaultTimeoutMS,
		},
		Layout: LayoutConfig{
			PaddingThreshold: DefaultPaddingThreshold,
			ThickRatio:       DefaultThickRatio,
			ThinRatio:        DefaultThinRatio,
			MinLaneHeight:    DefaultMinLaneHeight,
			MinVisibleSize:   DefaultMinVisibleSize,
		},
		Gesture: GestureConfig{
			SettleMS:      DefaultSettleMS,
			DragThreshold: DefaultDragThreshold,
			ZoomBase:      DefaultZoomBase,
			WheelStep:     DefaultWheelStep,
		},
		View: ViewConfig{
			CellWidth:     DefaultCellWidth,
			CellHeight:    DefaultCellHeight,
			ComponentPane: true,
			Resume:        true,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path under dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectDirName, ConfigFileName)
}

// RenderConfigTemplate renders the commented config template with defaults.
func RenderConfigTemplate() string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, NewDefaultConfig())
	return buf.String()
}
