//go:build darwin

package osbind

import hk "golang.design/x/hotkey"

const modAlt = hk.ModOption
