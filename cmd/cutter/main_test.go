package main

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/command"
)

func TestParseArgsFocus(t *testing.T) {
	d, err := parseArgs([]string{"focus", "left"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != command.KindFocus || d.Direction != command.DirLeft {
		t.Fatalf("unexpected data: %+v", d)
	}
}

func TestParseArgsBindRecursive(t *testing.T) {
	d, err := parseArgs([]string{"bind", "logo+shift+q", "quit", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != command.KindBind || d.BindKey != "q" {
		t.Fatalf("unexpected bind data: %+v", d)
	}
	if d.BindMods != command.ModLogo|command.ModShift {
		t.Fatalf("unexpected bind mods: %b", d.BindMods)
	}
	if d.BindInner == nil || d.BindInner.Kind != command.KindQuit || d.BindInner.Code != 1 {
		t.Fatalf("unexpected inner command: %+v", d.BindInner)
	}
}

func TestParseArgsWorkspaceSwitch(t *testing.T) {
	d, err := parseArgs([]string{"workspace", "switch", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != command.KindWorkspaceSwitch || d.N != 3 {
		t.Fatalf("unexpected data: %+v", d)
	}
}

func TestParseArgsConfigFocusColor(t *testing.T) {
	d, err := parseArgs([]string{"config", "focus_color", "0.1", "0.2", "0.3", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != command.KindConfigFocusColor || d.R != 0.1 || d.A != 1 {
		t.Fatalf("unexpected data: %+v", d)
	}
}

func TestParseArgsRejectsUnknownCommand(t *testing.T) {
	if _, err := parseArgs([]string{"frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestExtractSocketFlag(t *testing.T) {
	args, sock := extractSocketFlag([]string{"-socket", "/tmp/x", "focus", "left"})
	if sock != "/tmp/x" {
		t.Fatalf("expected socket extracted, got %q", sock)
	}
	if len(args) != 2 || args[0] != "focus" || args[1] != "left" {
		t.Fatalf("unexpected remaining args: %v", args)
	}
}
