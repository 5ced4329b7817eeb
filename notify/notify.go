// Package notify shows blocking messages to the user.
package notify

import (
	"github.com/rs/zerolog"
	"github.com/sqweek/dialog"
)

// Notifier surfaces warnings and errors outside the normal UI flow.
type Notifier interface {
	Warn(title, msg string)
	Error(title, msg string)
}

// Native shows OS message boxes. Calls block until the box is dismissed.
type Native struct{}

func (Native) Warn(title, msg string) {
	dialog.Message("%s", msg).Title(title).Info()
}

func (Native) Error(title, msg string) {
	dialog.Message("%s", msg).Title(title).Error()
}

// Log records messages instead of showing them.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Warn(title, msg string) {
	l.Logger.Warn().Str("title", title).Msg(msg)
}

func (l Log) Error(title, msg string) {
	l.Logger.Error().Str("title", title).Msg(msg)
}

// Recorder keeps every message; the UI tests use it.
type Recorder struct {
	Warnings []string
	Errors   []string
}

func (r *Recorder) Warn(title, msg string)  { r.Warnings = append(r.Warnings, title+": "+msg) }
func (r *Recorder) Error(title, msg string) { r.Errors = append(r.Errors, title+": "+msg) }
