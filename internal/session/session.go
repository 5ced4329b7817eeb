// Package session opens what the chartlog commands share: the config, the
// capture source, the image folder and the journal.
package session

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/chartlog/capture"
	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/entry"
	"github.com/rustyeddy/chartlog/journal"
	"github.com/rustyeddy/chartlog/notify"
)

// DefaultConfigFile is read from the working directory when no config path is given.
const DefaultConfigFile = "chartlog.yaml"

// LoadConfig reads the config file at path, or DefaultConfigFile when path
// is empty and that file exists, or else the defaults of mode. A non-empty
// mode overrides the file and a non-empty level overrides its log level.
func LoadConfig(path, mode, level string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg *config.Config
	if path == "" {
		cfg = config.DefaultFor(mode)
	} else {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if mode != "" && mode != cfg.Mode {
		// Switching mode also switches the mode's default paths unless
		// the file named its own.
		def := config.DefaultFor(cfg.Mode)
		next := config.DefaultFor(mode)
		cfg.Mode = mode
		if cfg.Journal.Path == def.Journal.Path {
			cfg.Journal.Path = next.Journal.Path
		}
		if cfg.Capture.ImageFolder == def.Capture.ImageFolder {
			cfg.Capture.ImageFolder = next.Capture.ImageFolder
		}
		if cfg.Hotkey == def.Hotkey {
			cfg.Hotkey = next.Hotkey
		}
	}
	if level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SchemaFor returns the table layout a capture mode writes.
func SchemaFor(mode string) journal.Schema {
	if mode == config.ModeQuick {
		return journal.QuickSchema
	}
	return journal.SnipSchema
}

// Session holds the collaborators of one command run.
type Session struct {
	Config   *config.Config
	Log      zerolog.Logger
	Capturer capture.Capturer
	Store    *capture.Store
	Table    journal.Table
	Flow     *entry.Flow
}

// Open prepares the image folder and the journal. imageFile, when set,
// stands in for the live screen.
func Open(cfg *config.Config, log zerolog.Logger, imageFile string) (*Session, error) {
	store, err := capture.NewStore(cfg.Capture.ImageFolder)
	if err != nil {
		return nil, err
	}

	table, err := journal.Open(cfg.Journal.Format, cfg.Journal.Path, SchemaFor(cfg.Mode))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	var c capture.Capturer = capture.Screen{Display: cfg.Capture.Display}
	if imageFile != "" {
		c = capture.File{Path: imageFile}
	}

	return &Session{
		Config:   cfg,
		Log:      log,
		Capturer: c,
		Store:    store,
		Table:    table,
		Flow:     entry.NewFlow(table, cfg.Journal.LastTickerFile, log),
	}, nil
}

func (s *Session) Close() error {
	return s.Table.Close()
}

// Notifier returns native message boxes when configured, else the log.
func (s *Session) Notifier() notify.Notifier {
	if s.Config.UI.NativeDialogs {
		return notify.Native{}
	}
	return notify.Log{Logger: s.Log}
}

// Record saves img and appends an entry for it without any UI.
func (s *Session) Record(img image.Image, in entry.Input) (entry.Result, error) {
	path, err := s.Store.Save(img)
	if err != nil {
		return entry.Result{}, err
	}
	s.Log.Info().Str("path", path).Msg("capture saved")

	res := s.Flow.Submit(path, in)
	switch res.Outcome {
	case entry.OutcomeSaved:
		return res, nil
	case entry.OutcomeInvalid:
		return res, fmt.Errorf("entry not saved: %s (capture kept at %s)", res.Reason, path)
	case entry.OutcomeLocked:
		return res, fmt.Errorf("%s (capture kept at %s): %w", entry.LockedMessage(s.Config.Journal.Path), path, res.Err)
	default:
		return res, fmt.Errorf("entry not saved (capture kept at %s): %w", path, res.Err)
	}
}
