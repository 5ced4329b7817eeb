package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Capture modes.
const (
	ModeSnip  = "snip"  // freeze the screen and drag a region
	ModeQuick = "quick" // save the full screen and prompt for ticker, price and note
)

// Table formats.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Config is the complete startup configuration.
type Config struct {
	Mode    string        `json:"mode" yaml:"mode"`
	Hotkey  string        `json:"hotkey" yaml:"hotkey"`
	Capture CaptureConfig `json:"capture" yaml:"capture"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// CaptureConfig controls where screenshots come from and where they go.
type CaptureConfig struct {
	ImageFolder string `json:"image_folder" yaml:"image_folder"`
	// Display selects a single monitor. -1 captures the whole virtual desktop.
	Display int `json:"display" yaml:"display"`
}

// JournalConfig describes the log table and the last-ticker file.
type JournalConfig struct {
	Format         string `json:"format" yaml:"format"` // "xlsx", "csv" or "sqlite"
	Path           string `json:"path" yaml:"path"`
	LastTickerFile string `json:"last_ticker_file" yaml:"last_ticker_file"`
}

// UIConfig contains presentation switches.
type UIConfig struct {
	NativeDialogs bool `json:"native_dialogs" yaml:"native_dialogs"`
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	// File receives log output while the terminal UI owns stdout/stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Fields missing from the file keep the defaults of the configured mode.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var peek struct {
		Mode string `json:"mode" yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &peek); err != nil {
		if err := json.Unmarshal(data, &peek); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg := DefaultFor(peek.Mode)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeSnip && c.Mode != ModeQuick {
		return fmt.Errorf("mode must be '%s' or '%s'", ModeSnip, ModeQuick)
	}
	if strings.TrimSpace(c.Hotkey) == "" {
		return fmt.Errorf("hotkey is required")
	}
	if c.Capture.ImageFolder == "" {
		return fmt.Errorf("capture.image_folder is required")
	}
	if c.Capture.Display < -1 {
		return fmt.Errorf("capture.display must be -1 (all) or a display index")
	}
	switch c.Journal.Format {
	case FormatXLSX, FormatCSV, FormatSQLite:
	default:
		return fmt.Errorf("journal.format must be 'xlsx', 'csv' or 'sqlite'")
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	if c.Journal.LastTickerFile == "" {
		return fmt.Errorf("journal.last_ticker_file is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	return nil
}

// Default returns the snip-mode configuration.
func Default() *Config {
	return DefaultFor(ModeSnip)
}

// DefaultFor returns the defaults of a capture mode. Unknown modes get the
// snip defaults with the mode left as given so Validate can reject it.
func DefaultFor(mode string) *Config {
	cfg := &Config{
		Mode:   ModeSnip,
		Hotkey: "f10",
		Capture: CaptureConfig{
			ImageFolder: "Trading_Gorselleri",
			Display:     -1,
		},
		Journal: JournalConfig{
			Format:         FormatXLSX,
			Path:           "Trading_Gunlugu_V2.xlsx",
			LastTickerFile: "last_ticker.txt",
		},
		Log: LogConfig{
			Level: "info",
			File:  "chartlog.log",
		},
	}

	switch mode {
	case "", ModeSnip:
	case ModeQuick:
		cfg.Mode = ModeQuick
		cfg.Hotkey = "f9"
		cfg.Capture.ImageFolder = "Screenshots"
		cfg.Journal.Path = "Trading_Gunlugu.xlsx"
	default:
		cfg.Mode = mode
	}
	return cfg
}
