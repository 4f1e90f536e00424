// Command cutter parses argv into a command.Data, sends it to the running
// cardboard daemon over the IPC socket, and prints any response message.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/ipc"
)

var socketOverride string

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	args, socketOverride = extractSocketFlag(args)

	if len(args) == 0 {
		printUsage(os.Stderr)
		return 2
	}

	d, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cutter: %v\n", err)
		return 2
	}

	msg, err := ipc.Send(d, socketOverride)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cutter: %v\n", err)
		return 1
	}
	if msg != "" {
		// command.Dispatch only populates Result.Message on failure; a
		// successful command always reports back empty.
		fmt.Fprintf(os.Stderr, "cutter: %s\n", msg)
		return 1
	}
	return 0
}

// extractSocketFlag pulls a leading "-socket <path>" pair out of args,
// leaving the command and its own arguments untouched.
func extractSocketFlag(args []string) ([]string, string) {
	for i, a := range args {
		if a == "-socket" && i+1 < len(args) {
			rest := append([]string{}, args[:i]...)
			rest = append(rest, args[i+2:]...)
			return rest, args[i+1]
		}
	}
	return args, ""
}

func parseArgs(args []string) (*command.Data, error) {
	switch args[0] {
	case "quit":
		code := int32(0)
		if len(args) > 1 {
			n, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("quit: bad exit code %q: %w", args[1], err)
			}
			code = int32(n)
		}
		return &command.Data{Kind: command.KindQuit, Code: code}, nil

	case "focus":
		if len(args) != 2 {
			return nil, fmt.Errorf("focus: expected one of left|right|up|down|cycle")
		}
		dir, err := command.ParseDirection(args[1])
		if err != nil {
			return nil, err
		}
		return &command.Data{Kind: command.KindFocus, Direction: dir}, nil

	case "exec":
		if len(args) < 2 {
			return nil, fmt.Errorf("exec: expected a command to run")
		}
		return &command.Data{Kind: command.KindExec, Argv: args[1:]}, nil

	case "bind":
		if len(args) < 3 {
			return nil, fmt.Errorf("bind: expected <modifier+...+key> <subcommand...>")
		}
		mods, key, err := parseChord(args[1])
		if err != nil {
			return nil, fmt.Errorf("bind: %w", err)
		}
		inner, err := parseArgs(args[2:])
		if err != nil {
			return nil, fmt.Errorf("bind: %w", err)
		}
		return &command.Data{Kind: command.KindBind, BindMods: mods, BindKey: key, BindInner: inner}, nil

	case "workspace":
		if len(args) != 3 {
			return nil, fmt.Errorf("workspace: expected {switch|move} <n>")
		}
		n, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("workspace: bad index %q: %w", args[2], err)
		}
		switch args[1] {
		case "switch":
			return &command.Data{Kind: command.KindWorkspaceSwitch, N: int32(n)}, nil
		case "move":
			return &command.Data{Kind: command.KindWorkspaceMove, N: int32(n)}, nil
		default:
			return nil, fmt.Errorf("workspace: unknown subcommand %q", args[1])
		}

	case "toggle_floating":
		return &command.Data{Kind: command.KindToggleFloating}, nil

	case "move":
		if len(args) != 3 {
			return nil, fmt.Errorf("move: expected <dx> <dy>")
		}
		dx, dy, err := parseInt32Pair(args[1], args[2])
		if err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
		return &command.Data{Kind: command.KindMove, DX: dx, DY: dy}, nil

	case "resize":
		if len(args) != 3 {
			return nil, fmt.Errorf("resize: expected <w> <h>")
		}
		w, h, err := parseInt32Pair(args[1], args[2])
		if err != nil {
			return nil, fmt.Errorf("resize: %w", err)
		}
		return &command.Data{Kind: command.KindResize, W: w, H: h}, nil

	case "insert_into_column":
		return &command.Data{Kind: command.KindInsertIntoColumn}, nil

	case "pop_from_column":
		return &command.Data{Kind: command.KindPopFromColumn}, nil

	case "cycle_width":
		return &command.Data{Kind: command.KindCycleWidth}, nil

	case "config":
		return parseConfig(args[1:])

	default:
		return nil, fmt.Errorf("unknown command %q", args[0])
	}
}

func parseConfig(args []string) (*command.Data, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("config: expected mouse_mod|gap|focus_color")
	}
	switch args[0] {
	case "mouse_mod":
		if len(args) != 2 {
			return nil, fmt.Errorf("config mouse_mod: expected <mods>")
		}
		mods, err := command.ParseModifiers(args[1])
		if err != nil {
			return nil, fmt.Errorf("config mouse_mod: %w", err)
		}
		return &command.Data{Kind: command.KindConfigMouseMod, Mods: mods}, nil

	case "gap":
		if len(args) != 2 {
			return nil, fmt.Errorf("config gap: expected <px>")
		}
		px, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("config gap: bad value %q: %w", args[1], err)
		}
		return &command.Data{Kind: command.KindConfigGap, Gap: int32(px)}, nil

	case "focus_color":
		if len(args) != 5 {
			return nil, fmt.Errorf("config focus_color: expected <r> <g> <b> <a>")
		}
		vals := make([]float64, 4)
		for i, s := range args[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("config focus_color: bad component %q: %w", s, err)
			}
			vals[i] = v
		}
		return &command.Data{Kind: command.KindConfigFocusColor, R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil

	default:
		return nil, fmt.Errorf("config: unknown subcommand %q", args[0])
	}
}

func parseChord(s string) (uint32, string, error) {
	i := len(s) - 1
	for i >= 0 && s[i] != '+' {
		i--
	}
	if i < 0 {
		return 0, "", fmt.Errorf("expected <modifier+...+key>, got %q", s)
	}
	mods, err := command.ParseModifiers(s[:i])
	if err != nil {
		return 0, "", err
	}
	return mods, s[i+1:], nil
}

func parseInt32Pair(a, b string) (int32, int32, error) {
	x, err := strconv.ParseInt(a, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value %q: %w", a, err)
	}
	y, err := strconv.ParseInt(b, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value %q: %w", b, err)
	}
	return int32(x), int32(y), nil
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: cutter [-socket <path>] <command> [args...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  quit [code]")
	fmt.Fprintln(w, "  focus {left|right|up|down|cycle}")
	fmt.Fprintln(w, "  exec <argv...>")
	fmt.Fprintln(w, "  bind <modifier+...+key> <subcommand...>")
	fmt.Fprintln(w, "  workspace {switch|move} <n>")
	fmt.Fprintln(w, "  toggle_floating")
	fmt.Fprintln(w, "  move <dx> <dy>")
	fmt.Fprintln(w, "  resize <w> <h>")
	fmt.Fprintln(w, "  insert_into_column")
	fmt.Fprintln(w, "  pop_from_column")
	fmt.Fprintln(w, "  cycle_width")
	fmt.Fprintln(w, "  config {mouse_mod <mods> | gap <px> | focus_color <r> <g> <b> <a>}")
}
