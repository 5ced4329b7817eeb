package hotkey

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Event is one key-down of a registered combination.
type Event struct{}

// Binding is a registered OS hotkey.
type Binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan Event
}

// Binder creates the OS binding of a combination.
type Binder func(Combo) Binding

// Listener delivers presses of one combination to a callback.
type Listener struct {
	Combo Combo
	Log   zerolog.Logger

	bind Binder
}

// NewListener returns a listener registering combo through bind.
func NewListener(combo Combo, bind Binder, log zerolog.Logger) *Listener {
	return &Listener{
		Combo: combo,
		Log:   log,
		bind:  bind,
	}
}

// Listen registers the combination and calls fn from a dedicated goroutine
// on every key press until ctx ends, then unregisters. fn must not touch UI
// state directly; it should hand off to the UI loop. Listen returns after
// registration; the returned wait function blocks until the goroutine exits.
func (l *Listener) Listen(ctx context.Context, fn func()) (wait func(), err error) {
	b := l.bind(l.Combo)
	if err := b.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %s: %w", l.Combo, err)
	}
	l.Log.Info().Str("hotkey", l.Combo.String()).Msg("hotkey registered")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if err := b.Unregister(); err != nil {
				l.Log.Warn().Err(err).Str("hotkey", l.Combo.String()).Msg("unregister hotkey")
				return
			}
			l.Log.Debug().Str("hotkey", l.Combo.String()).Msg("hotkey unregistered")
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-b.Keydown():
				if !ok {
					return
				}
				l.Log.Debug().Str("hotkey", l.Combo.String()).Msg("hotkey pressed")
				fn()
			}
		}
	}()

	return wg.Wait, nil
}
