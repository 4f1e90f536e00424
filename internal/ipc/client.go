package ipc

import (
	"bytes"
	"fmt"
	"net"
	"time"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/runtimepath"
)

// dialTimeout bounds how long cutter waits for the core loop to accept
// the connection before giving up.
const dialTimeout = 2 * time.Second

// Send dials the socket (socketOverride if non-empty, else the
// environment-derived default), writes one encoded command frame, and
// returns the server's result message, if any. The connection is
// one-shot: closed after the single request/response exchange.
func Send(d *command.Data, socketOverride string) (string, error) {
	socketPath, err := runtimepath.WithOverride(socketOverride)
	if err != nil {
		return "", err
	}

	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("ipc: connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	var buf bytes.Buffer
	if err := command.Encode(&buf, d); err != nil {
		return "", fmt.Errorf("ipc: encode command: %w", err)
	}
	if err := WriteFrame(conn, buf.Bytes()); err != nil {
		return "", fmt.Errorf("ipc: send command: %w", err)
	}

	conn.(*net.UnixConn).CloseWrite()

	reply, err := ReadFrame(conn)
	if err != nil {
		// No reply frame is not an error: many commands produce none.
		return "", nil
	}
	return string(reply), nil
}
