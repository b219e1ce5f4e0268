package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/specialistvlad/plugbuild/internal/builder"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/handlers"
	"github.com/specialistvlad/plugbuild/internal/hcl_adapter"
	"github.com/specialistvlad/plugbuild/internal/registry"
	"github.com/specialistvlad/plugbuild/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	handlers *handlers.Handlers
	registry *registry.Registry
	builder  *builder.Builder
	loaders  []config.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registries.
// Without modules, the compiled-in core modules are registered.
//
// A component registry that does not validate is a programming error, so
// NewApp panics in that case.
func NewApp(ctx context.Context, outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	h := handlers.New()
	handlers.RegisterDefaults(h)
	h.Freeze()
	logger.Debug("Conversion handlers registered.", "kinds", h.Kinds())

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "components", len(reg.Descriptors()))

	if err := reg.Validate(ctx, h); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		handlers: h,
		registry: reg,
		builder:  builder.New(h),
		loaders:  []config.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()},
	}
}

// Registry returns the application's component registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// LoadModel loads every configuration file under the configured path with
// every loader and merges the results. Properties given on the command line
// win over properties from files.
func (a *App) LoadModel(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration...", "path", a.config.ConfigPath)

	model := config.NewModel()
	for _, l := range a.loaders {
		m, err := l.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model.Merge(m)
	}
	maps.Copy(model.Properties, a.config.Properties)

	if len(model.Components) == 0 {
		logger.Warn("No components found in configuration.", "path", a.config.ConfigPath)
	}
	logger.Info("Configuration loaded.", "components", len(model.Components), "properties", len(model.Properties))
	return model, nil
}
