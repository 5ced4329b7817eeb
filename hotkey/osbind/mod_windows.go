//go:build windows

package osbind

import hk "golang.design/x/hotkey"

const modAlt = hk.ModAlt
