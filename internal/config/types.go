package config

import "time"

// Config is the editor configuration file.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	History HistoryConfig `yaml:"history"`
	Preview PreviewConfig `yaml:"preview"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// EditorConfig controls canvas editing.
type EditorConfig struct {
	GridSize      int     `yaml:"grid_size" validate:"min=1,max=200"`
	SnapToGrid    bool    `yaml:"snap_to_grid"`
	DefaultWidth  float64 `yaml:"default_width" validate:"gt=0"`
	DefaultHeight float64 `yaml:"default_height" validate:"gt=0"`
}

// HistoryConfig controls undo/redo retention.
type HistoryConfig struct {
	Capacity      int           `yaml:"capacity" validate:"min=2,max=1000"`
	SnapshotDelay time.Duration `yaml:"snapshot_delay" validate:"gte=0s,lte=10s"`
}

// PreviewConfig controls the preview document and regeneration delays.
type PreviewConfig struct {
	Background  string        `yaml:"background" validate:"required,hexcolor"`
	RenderDelay time.Duration `yaml:"render_delay" validate:"gte=0s,lte=10s"`
	CodeDelay   time.Duration `yaml:"code_delay" validate:"gte=0s,lte=10s"`
}

// ServerConfig configures the live preview server.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			GridSize:      10,
			DefaultWidth:  200,
			DefaultHeight: 100,
		},
		History: HistoryConfig{
			Capacity:      100,
			SnapshotDelay: 500 * time.Millisecond,
		},
		Preview: PreviewConfig{
			Background:  "#000000",
			RenderDelay: 300 * time.Millisecond,
			CodeDelay:   200 * time.Millisecond,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Log:    LogConfig{Level: "info", HumanReadable: true},
	}
}
