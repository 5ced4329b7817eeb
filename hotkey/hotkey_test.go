package hotkey

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		key     Key
		mods    []Modifier
		wantErr bool
	}{
		{in: "f10", key: "f10"},
		{in: "F9", key: "f9"},
		{in: "ctrl+shift+s", key: "s", mods: []Modifier{ModCtrl, ModShift}},
		{in: "Ctrl + L", key: "l", mods: []Modifier{ModCtrl}},
		{in: "option+1", key: "1", mods: []Modifier{ModAlt}},
		{in: "", wantErr: true},
		{in: "f99", wantErr: true},
		{in: "ctrl+control+a", wantErr: true},
		{in: "ctrl+shift", wantErr: true},
		{in: "ctrl+a+b", wantErr: true},
		{in: "ctrl+ctrl+a", wantErr: true},
		{in: "hyper+a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, c.Key)
			assert.Equal(t, tt.mods, c.Mods)
		})
	}
}

type fakeBinding struct {
	ch           chan Event
	registered   atomic.Bool
	unregistered atomic.Bool
	regErr       error
}

func (f *fakeBinding) Register() error {
	if f.regErr != nil {
		return f.regErr
	}
	f.registered.Store(true)
	return nil
}

func (f *fakeBinding) Unregister() error {
	f.unregistered.Store(true)
	return nil
}

func (f *fakeBinding) Keydown() <-chan Event { return f.ch }

func newFakeListener(t *testing.T, fb *fakeBinding) *Listener {
	t.Helper()

	c, err := Parse("f10")
	require.NoError(t, err)
	return NewListener(c, func(Combo) Binding { return fb }, zerolog.Nop())
}

func TestListenDeliversPresses(t *testing.T) {
	fb := &fakeBinding{ch: make(chan Event)}
	l := newFakeListener(t, fb)

	ctx, cancel := context.WithCancel(context.Background())
	presses := make(chan struct{}, 4)
	wait, err := l.Listen(ctx, func() { presses <- struct{}{} })
	require.NoError(t, err)
	assert.True(t, fb.registered.Load())

	fb.ch <- Event{}
	fb.ch <- Event{}

	for i := 0; i < 2; i++ {
		select {
		case <-presses:
		case <-time.After(time.Second):
			t.Fatal("press not delivered")
		}
	}

	cancel()
	wait()
	assert.True(t, fb.unregistered.Load())
}

func TestListenRegisterError(t *testing.T) {
	fb := &fakeBinding{ch: make(chan Event), regErr: errors.New("already grabbed")}
	l := newFakeListener(t, fb)

	_, err := l.Listen(context.Background(), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already grabbed")
	assert.False(t, fb.unregistered.Load())
}

func TestListenStopsWhenChannelCloses(t *testing.T) {
	fb := &fakeBinding{ch: make(chan Event)}
	l := newFakeListener(t, fb)

	wait, err := l.Listen(context.Background(), func() {})
	require.NoError(t, err)

	close(fb.ch)
	wait()
	assert.True(t, fb.unregistered.Load())
}
