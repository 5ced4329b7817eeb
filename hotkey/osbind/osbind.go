// Package osbind registers hotkey combinations with the window system.
//
// Importing this package connects to the display at program start (on X11
// the underlying library aborts without one), so only the hotkey daemon
// imports it.
package osbind

import (
	"sync"

	"github.com/rustyeddy/chartlog/hotkey"
	hk "golang.design/x/hotkey"
)

var keys = map[hotkey.Key]hk.Key{
	"f1": hk.KeyF1, "f2": hk.KeyF2, "f3": hk.KeyF3, "f4": hk.KeyF4,
	"f5": hk.KeyF5, "f6": hk.KeyF6, "f7": hk.KeyF7, "f8": hk.KeyF8,
	"f9": hk.KeyF9, "f10": hk.KeyF10, "f11": hk.KeyF11, "f12": hk.KeyF12,

	"a": hk.KeyA, "b": hk.KeyB, "c": hk.KeyC, "d": hk.KeyD,
	"e": hk.KeyE, "f": hk.KeyF, "g": hk.KeyG, "h": hk.KeyH,
	"i": hk.KeyI, "j": hk.KeyJ, "k": hk.KeyK, "l": hk.KeyL,
	"m": hk.KeyM, "n": hk.KeyN, "o": hk.KeyO, "p": hk.KeyP,
	"q": hk.KeyQ, "r": hk.KeyR, "s": hk.KeyS, "t": hk.KeyT,
	"u": hk.KeyU, "v": hk.KeyV, "w": hk.KeyW, "x": hk.KeyX,
	"y": hk.KeyY, "z": hk.KeyZ,

	"0": hk.Key0, "1": hk.Key1, "2": hk.Key2, "3": hk.Key3,
	"4": hk.Key4, "5": hk.Key5, "6": hk.Key6, "7": hk.Key7,
	"8": hk.Key8, "9": hk.Key9,
}

func modifier(m hotkey.Modifier) hk.Modifier {
	switch m {
	case hotkey.ModShift:
		return hk.ModShift
	case hotkey.ModAlt:
		return modAlt
	default:
		return hk.ModCtrl
	}
}

// New is a hotkey.Binder backed by golang.design/x/hotkey.
func New(c hotkey.Combo) hotkey.Binding {
	mods := make([]hk.Modifier, 0, len(c.Mods))
	for _, m := range c.Mods {
		mods = append(mods, modifier(m))
	}
	return &binding{
		hk:   hk.New(mods, keys[c.Key]),
		out:  make(chan hotkey.Event),
		stop: make(chan struct{}),
	}
}

// binding forwards library key-down events as hotkey.Event until
// Unregister.
type binding struct {
	hk   *hk.Hotkey
	out  chan hotkey.Event
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (b *binding) Register() error {
	if err := b.hk.Register(); err != nil {
		return err
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(b.out)
		in := b.hk.Keydown()
		for {
			select {
			case <-b.stop:
				return
			case _, ok := <-in:
				if !ok {
					return
				}
				select {
				case b.out <- hotkey.Event{}:
				case <-b.stop:
					return
				}
			}
		}
	}()
	return nil
}

func (b *binding) Unregister() error {
	b.once.Do(func() { close(b.stop) })
	b.wg.Wait()
	return b.hk.Unregister()
}

func (b *binding) Keydown() <-chan hotkey.Event { return b.out }
