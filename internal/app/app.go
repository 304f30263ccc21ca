package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/shadegrid/internal/compiler"
	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	compiler *compiler.Compiler
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, errW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with the builtin node catalogs.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Builtin node catalogs registered.", "count", len(modules), "types", reg.Len())

	// Layer user spec manifests on top of the builtins.
	if appConfig.SpecsPath != "" {
		if err := reg.LoadSpecsRecursively(ctx, appConfig.SpecsPath); err != nil {
			// A failure to load manifests is a fatal startup error.
			panic(fmt.Errorf("failed to load node spec manifests: %w", err))
		}
		logger.Debug("User node spec manifests loaded.", "path", appConfig.SpecsPath)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		compiler: compiler.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
