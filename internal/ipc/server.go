package ipc

import (
	"bytes"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/runtimepath"
)

// Server accepts one-shot IPC connections: accept, read one frame, decode
// a command.Data, dispatch it against target, optionally reply with a
// result message, close. Go's net package already marks listener and
// connection file descriptors close-on-exec and non-blocking, so no
// further fcntl tuning is needed here.
type Server struct {
	socketPath   string
	listener     net.Listener
	target       command.Target
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex

	// Logger receives structured accept/decode diagnostics, the same way
	// termtile's reconciler takes a *slog.Logger; defaults to
	// slog.Default() and can be overridden before Start.
	Logger *slog.Logger
}

// NewServer creates a server that dispatches decoded commands to target.
// socketOverride, if non-empty, takes precedence over the environment-
// derived default socket path.
func NewServer(target command.Target, socketOverride string) (*Server, error) {
	socketPath, err := runtimepath.WithOverride(socketOverride)
	if err != nil {
		return nil, err
	}

	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		target:     target,
		startTime:  time.Now(),
		Logger:     slog.Default(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening and accepting connections in a background
// goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return err
	}

	s.Logger.Info("ipc: listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			s.Logger.Error("ipc: accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	payload, err := ReadFrame(conn)
	if err != nil {
		s.Logger.Error("ipc: malformed frame", "error", err)
		WriteFrame(conn, []byte(unableToReceive))
		return
	}

	data, err := command.Decode(bytes.NewReader(payload))
	if err != nil {
		s.Logger.Error("ipc: decode error", "error", err)
		WriteFrame(conn, []byte(unableToReceive))
		return
	}

	result := command.Dispatch(data, s.target)
	if result.Message != "" {
		if err := WriteFrame(conn, []byte(result.Message)); err != nil {
			s.Logger.Error("ipc: write response", "error", err)
		}
	}
}

// Stop closes the listener and removes the socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
