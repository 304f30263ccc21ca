package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoPreset = `
graph "demo" {
  name    = "demo preset"
  version = 2

  node "oscillator" "osc1" {
    params = {
      frequency = 0.5
      amplitude = 0.8
    }
  }

  node "hsv" "tint" {}

  node "output" "screen" {}

  connection "c1" {
    from = "osc1.wave"
    to   = "tint.h"
  }

  connection "c2" {
    from = "tint.color"
    to   = "screen.color"
  }
}
`

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewApp_RegistersCoreCatalog(t *testing.T) {
	t.Parallel()

	// Arrange
	cfg := &Config{PresetPath: "unused.hcl", LogLevel: "error"}

	// Act
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)

	// Assert
	for _, typeID := range []string{"constant", "oscillator", "hsv", "rotate", "audio_level", "output"} {
		_, ok := a.Registry().Lookup(typeID)
		assert.True(t, ok, "type %q missing from core catalog", typeID)
	}
}

// End to end: preset file in, program text and binding metadata out.
func TestAppRun_CompilesPresetToFiles(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	cfg := &Config{
		PresetPath: writePreset(t, demoPreset),
		OutputPath: filepath.Join(dir, "program.frag"),
		MetaPath:   filepath.Join(dir, "program.json"),
		LogLevel:   "error",
	}
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)

	// Act
	err := a.Run(context.Background(), cfg)

	// Assert
	require.NoError(t, err)

	program, readErr := os.ReadFile(cfg.OutputPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(program), "#version 300 es")
	assert.Contains(t, string(program), "uniform float u_osc1_Frequency;")
	assert.Contains(t, string(program), "fragColor = vec4(out_screen_color, 1.0);")

	metaRaw, readErr := os.ReadFile(cfg.MetaPath)
	require.NoError(t, readErr)
	var meta struct {
		Uniforms []struct {
			Name string `json:"name"`
		} `json:"uniforms"`
		Diagnostics struct {
			Errors          []string `json:"errors"`
			FinalOutputNode string   `json:"finalOutputNodeId"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(metaRaw, &meta))
	assert.Empty(t, meta.Diagnostics.Errors)
	assert.Equal(t, "screen", meta.Diagnostics.FinalOutputNode)
	assert.Equal(t, "u_time", meta.Uniforms[0].Name)
}

func TestAppRun_WritesProgramToStdoutByDefault(t *testing.T) {
	t.Parallel()

	// Arrange
	var out bytes.Buffer
	cfg := &Config{
		PresetPath: writePreset(t, demoPreset),
		LogLevel:   "error",
	}
	a := NewApp(&out, &bytes.Buffer{}, cfg)

	// Act
	err := a.Run(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "#version 300 es")
}

func TestAppRun_CompileErrorsFailTheRun(t *testing.T) {
	t.Parallel()

	// Arrange
	broken := `
graph "broken" {
  version = 2

  node "no_such_type" "n1" {}
}
`
	cfg := &Config{
		PresetPath: writePreset(t, broken),
		LogLevel:   "error",
	}
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)

	// Act
	err := a.Run(context.Background(), cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile")
}

func TestAppRun_MissingPresetFile(t *testing.T) {
	t.Parallel()

	// Arrange
	cfg := &Config{
		PresetPath: filepath.Join(t.TempDir(), "nope.hcl"),
		LogLevel:   "error",
	}
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)

	// Act
	err := a.Run(context.Background(), cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load preset")
}

func TestNewConfig_RequiresPresetPath(t *testing.T) {
	t.Parallel()

	// Act
	_, err := NewConfig(Config{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PresetPath")
}
