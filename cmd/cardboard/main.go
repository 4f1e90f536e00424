// Command cardboard is the compositor daemon: it loads configuration, binds
// to the backend's event stream, starts the IPC socket, and runs the core
// event loop in the foreground until a quit command or signal stops it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/config"
	"github.com/cardboardwm/cardboard/internal/core"
	"github.com/cardboardwm/cardboard/internal/ipc"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to XDG config dir)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded", "gap", cfg.GapSize, "animation_ms", cfg.AnimationMillis)

	back, err := newBackend()
	if err != nil {
		logger.Error("failed to start backend", "error", err)
		os.Exit(1)
	}

	c := core.New(cfg, back)
	c.Logger = logger
	registerDefaultKeybindings(c.Keys)

	ipcServer, err := ipc.NewServer(c, cfg.SocketPath)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		os.Exit(1)
	}
	ipcServer.Logger = logger
	if err := ipcServer.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		os.Exit(1)
	}
	defer ipcServer.Stop()
	logger.Info("listening", "socket", ipcServer.SocketPath())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				newCfg, err := loadConfig(*configPath)
				if err != nil {
					logger.Error("config reload failed", "error", err)
					continue
				}
				c.Config = newCfg
				c.Seat.Gap = newCfg.GapSize
				c.Ops.Gap = newCfg.GapSize
				logger.Info("configuration reloaded")
			case os.Interrupt, syscall.SIGTERM:
				logger.Info("shutting down")
				c.Quit(0)
			}
		}
	}()

	logger.Info("cardboard started")
	code := c.Run()
	os.Exit(int(code))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// newBackend constructs the concrete backend.Backend the core loop drives.
//
// The display-server backend (output/input enumeration, the xdg-shell /
// layer-shell / xwayland protocol machinery, and GL rendering) is an
// external collaborator reached only through the backend.Backend interface;
// no wlroots binding ships in this module. backend.NewFake stands in here so
// the daemon is runnable end to end against its own IPC and command
// surface; wiring a real backend means constructing it here in place of
// NewFake and nowhere else, since core.New takes the interface.
func newBackend() (backend.Backend, error) {
	return backend.NewFake(), nil
}

func registerDefaultKeybindings(keys *command.KeybindingTable) {
	const mod = command.ModLogo

	keys.Bind(mod, "h", &command.Data{Kind: command.KindFocus, Direction: command.DirLeft})
	keys.Bind(mod, "l", &command.Data{Kind: command.KindFocus, Direction: command.DirRight})
	keys.Bind(mod, "k", &command.Data{Kind: command.KindFocus, Direction: command.DirUp})
	keys.Bind(mod, "j", &command.Data{Kind: command.KindFocus, Direction: command.DirDown})
	keys.Bind(mod, "tab", &command.Data{Kind: command.KindFocus, Direction: command.DirCycle})

	keys.Bind(mod, "return", &command.Data{Kind: command.KindExec, Argv: []string{"alacritty"}})
	keys.Bind(mod, "q", &command.Data{Kind: command.KindClose})
	keys.Bind(mod, "f", &command.Data{Kind: command.KindToggleFloating})
	keys.Bind(mod, "r", &command.Data{Kind: command.KindCycleWidth})

	keys.Bind(mod, "i", &command.Data{Kind: command.KindInsertIntoColumn})
	keys.Bind(mod, "o", &command.Data{Kind: command.KindPopFromColumn})

	for i := int32(1); i <= 9; i++ {
		key := fmt.Sprintf("%d", i)
		keys.Bind(mod, key, &command.Data{Kind: command.KindWorkspaceSwitch, N: i - 1})
		keys.Bind(mod|command.ModShift, key, &command.Data{Kind: command.KindWorkspaceMove, N: i - 1})
	}

	keys.Bind(mod|command.ModShift, "q", &command.Data{Kind: command.KindQuit, Code: 0})
}
