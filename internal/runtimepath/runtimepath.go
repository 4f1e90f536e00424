// Package runtimepath resolves the IPC socket path cutter and the core
// loop agree on, without either side needing a shared config file.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketPath returns the IPC socket path. Priority:
// 1) CARDBOARD_SOCKET, if set (an explicit override from the environment;
//    config.SocketPath goes through WithOverride instead)
// 2) /tmp/cardboard-$WAYLAND_DISPLAY
// 3) /tmp/cardboard-<uid>, if WAYLAND_DISPLAY is unset
func SocketPath() (string, error) {
	if override := os.Getenv("CARDBOARD_SOCKET"); override != "" {
		return override, nil
	}

	if display := os.Getenv("WAYLAND_DISPLAY"); display != "" {
		return filepath.Join("/tmp", fmt.Sprintf("cardboard-%s", display)), nil
	}

	uid := os.Getuid()
	return filepath.Join("/tmp", fmt.Sprintf("cardboard-%d", uid)), nil
}

// WithOverride returns the socket path, preferring override when non-empty
// (config.SocketPath) over the environment-derived default.
func WithOverride(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return SocketPath()
}
