package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/preset"
)

// Run executes the main application logic based on the provided configuration.
// It loads the preset document, compiles it, and writes the program text and
// the binding metadata to their destinations.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, err := preset.LoadFile(ctx, appConfig.PresetPath)
	if err != nil {
		return fmt.Errorf("failed to load preset: %w", err)
	}
	a.logger.Debug("Preset loaded.", "id", doc.ID, "nodes", len(doc.Nodes), "connections", len(doc.Connections))

	result := a.compiler.Compile(ctx, doc)

	for _, w := range result.Diagnostics.Warnings {
		a.logger.Warn(w)
	}
	for _, e := range result.Diagnostics.Errors {
		a.logger.Error(e)
	}

	if appConfig.MetaPath != "" {
		meta, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode compile metadata: %w", err)
		}
		if err := os.WriteFile(appConfig.MetaPath, append(meta, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write compile metadata: %w", err)
		}
		a.logger.Debug("Compile metadata written.", "path", appConfig.MetaPath)
	}

	if !result.OK() {
		return fmt.Errorf("preset %q failed to compile with %d error(s)", doc.ID, len(result.Diagnostics.Errors))
	}

	if appConfig.OutputPath != "" {
		if err := os.WriteFile(appConfig.OutputPath, []byte(result.ProgramText), 0o644); err != nil {
			return fmt.Errorf("failed to write program: %w", err)
		}
		a.logger.Info("Program written.", "path", appConfig.OutputPath, "uniforms", len(result.Uniforms))
	} else {
		fmt.Fprint(a.outW, result.ProgramText)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
