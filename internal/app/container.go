// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/infra/config"
	"github.com/runoshun/daisen/internal/infra/jsonstore"
	"github.com/runoshun/daisen/internal/infra/logging"
	"github.com/runoshun/daisen/internal/infra/traceapi"
	"github.com/runoshun/daisen/internal/infra/tracefile"
	"github.com/runoshun/daisen/internal/layout"
	"github.com/runoshun/daisen/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir    string // Directory daisen was started in
	ProjectDir string // Path to .daisen directory
	LogDir     string // Directory for log files (empty = logging disabled)
}

// newConfig creates a Config for dir.
func newConfig(dir, logDir string) Config {
	return Config{
		WorkDir:    dir,
		ProjectDir: filepath.Join(dir, domain.ProjectDirName),
		LogDir:     logDir,
	}
}

// defaultStateDir returns $XDG_STATE_HOME/daisen or its ~/.local/state
// fallback.
func defaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, domain.AppDirName)
}

// defaultLogDir returns the logs directory under defaultStateDir.
func defaultLogDir() string {
	dir := defaultStateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs")
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Source        domain.TraceSource
	Watcher       domain.TraceWatcher // nil when the source cannot be watched
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	FileLogger    domain.Logger
	ViewStore     domain.ViewStateStore // nil when there is no state directory

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	closeLog  func() error

	// Configuration
	Config   Config
	TraceKey string // Identity of the opened trace for saved views
}

// New creates a new Container for the given working directory.
func New(dir string) (*Container, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(abs, "")
	configLoader := config.NewLoader(cfg.ProjectDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, fmt.Sprintf("using default config: %v", err))
	}

	cfg.LogDir = appConfig.Log.Dir
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))
	fileLogger := logging.New(cfg.LogDir, logging.ParseLevel(appConfig.Log.Level))

	var viewStore domain.ViewStateStore
	if stateDir := defaultStateDir(); stateDir != "" {
		viewStore = jsonstore.New(filepath.Join(stateDir, jsonstore.FileName), 0)
	}

	return &Container{
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.ProjectDir),
		FileLogger:    fileLogger,
		ViewStore:     viewStore,
		Logger:        logger,
		AppConfig:     appConfig,
		closeLog:      fileLogger.Close,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, source domain.TraceSource, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Source:     source,
		Clock:      clock,
		FileLogger: domain.NopLogger{},
		Logger:     logger,
		AppConfig:  appConfig,
		Config:     cfg,
	}
}

// OpenTrace binds Source (and Watcher, for files) according to the
// [trace] section. A source that is already bound is kept.
func (c *Container) OpenTrace() error {
	if c.Source != nil {
		return nil
	}

	tc := c.AppConfig.Trace
	switch tc.Source {
	case domain.SourceFile, "":
		if tc.Path == "" {
			return domain.ErrEmptyTracePath
		}
		path := tc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Config.WorkDir, path)
		}
		c.Source = tracefile.New(path)
		c.Watcher = tracefile.NewWatcher(path, c.FileLogger)
		c.TraceKey = path
	case domain.SourceHTTP:
		client, err := traceapi.NewClientFromConfig(tc)
		if err != nil {
			return err
		}
		c.Source = client
		c.TraceKey = tc.URL
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownSource, tc.Source)
	}
	return nil
}

// Close releases log files.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// LayoutEngine returns a layout engine configured from [layout].
func (c *Container) LayoutEngine(scope string) *layout.Engine {
	return layout.NewEngineFromConfig(c.AppConfig.Layout, layout.WithLogger(c.FileLogger, scope))
}

// UseCase factory methods

// LoadTasksUseCase returns a new LoadTasks use case.
func (c *Container) LoadTasksUseCase() *usecase.LoadTasks {
	return usecase.NewLoadTasks(c.Source)
}

// LoadComponentNamesUseCase returns a new LoadComponentNames use case.
func (c *Container) LoadComponentNamesUseCase() *usecase.LoadComponentNames {
	return usecase.NewLoadComponentNames(c.Source)
}

// LoadViewUseCase returns a new LoadView use case.
func (c *Container) LoadViewUseCase() *usecase.LoadView {
	return usecase.NewLoadView(c.Source)
}

// ComputeLayoutUseCase returns a new ComputeLayout use case.
func (c *Container) ComputeLayoutUseCase() *usecase.ComputeLayout {
	return usecase.NewComputeLayout(c.Source, c.LayoutEngine("layout"), c.AppConfig.Layout.MinVisibleSize, c.FileLogger)
}

// RestoreViewUseCase returns a new RestoreView use case.
func (c *Container) RestoreViewUseCase() *usecase.RestoreView {
	return usecase.NewRestoreView(c.ViewStore)
}

// SaveViewUseCase returns a new SaveView use case.
func (c *Container) SaveViewUseCase() *usecase.SaveView {
	return usecase.NewSaveView(c.ViewStore, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
