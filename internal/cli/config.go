package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// defaultConfigFile is the config file looked up in the working directory
// when no --config flag is given.
const defaultConfigFile = "flowgrid.toml"

// Config holds the TOML configuration shared by the edit, render, and serve
// commands. Zero values fall back to the engine defaults.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// EditorConfig configures the interactive editor's snap grid and the
// attributes applied to edges created by connecting nodes.
type EditorConfig struct {
	SnapEnabled  bool    `toml:"snap_enabled"`
	SnapSize     float64 `toml:"snap_size"`
	EdgeKind     string  `toml:"edge_kind"`
	EdgeAnimated bool    `toml:"edge_animated"`
	EdgeStroke   string  `toml:"edge_stroke"`
}

// RenderConfig configures the static renderers.
type RenderConfig struct {
	Padding    float64 `toml:"padding"`
	Background string  `toml:"background"`
	Scale      float64 `toml:"scale"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{SnapSize: 20},
		Render: RenderConfig{Padding: 40, Scale: 1},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults. An
// empty path falls back to flowgrid.toml in the working directory; a missing
// default file is not an error, but a missing explicit path is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Editor.EdgeKind != "" {
		if _, ok := flow.ParsePathKind(cfg.Editor.EdgeKind); !ok {
			return cfg, fmt.Errorf("config %s: unknown edge kind %q", path, cfg.Editor.EdgeKind)
		}
	}
	return cfg, nil
}

// Apply pushes the editor settings into a store.
func (c Config) Apply(s *flow.Store) {
	s.SetSnapGrid(flow.SnapGrid{Enabled: c.Editor.SnapEnabled, Size: c.Editor.SnapSize})

	defaults := s.EdgeDefaults()
	if c.Editor.EdgeKind != "" {
		if kind, ok := flow.ParsePathKind(c.Editor.EdgeKind); ok {
			defaults.Kind = kind
		}
	}
	if c.Editor.EdgeStroke != "" {
		defaults.Stroke = c.Editor.EdgeStroke
	}
	defaults.Animated = c.Editor.EdgeAnimated
	s.SetEdgeDefaults(defaults)
}
