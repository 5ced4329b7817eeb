//go:build linux

package osbind

import hk "golang.design/x/hotkey"

// Mod1 is Alt on X11 keyboard maps.
const modAlt = hk.Mod1
