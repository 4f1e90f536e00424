package main

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbletea"

	"github.com/cardboardwm/cardboard/internal/command"
)

func keyMsg(key string) tea.KeyMsg {
	if key == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func withStubbedSendQuery(t *testing.T, replies map[command.Kind]string, err error) {
	t.Helper()
	orig := sendQuery
	sendQuery = func(d *command.Data, socketPath string) (string, error) {
		if err != nil {
			return "", err
		}
		return replies[d.Kind], nil
	}
	t.Cleanup(func() { sendQuery = orig })
}

func TestFetchSnapshotDecodesAllFour(t *testing.T) {
	withStubbedSendQuery(t, map[command.Kind]string{
		command.KindListOutputs:    `[{"name":"eDP-1","x":0,"y":0,"w":1920,"h":1080,"workspace_index":0}]`,
		command.KindListWorkspaces: `[{"index":0,"output_name":"eDP-1","active":true,"columns":1,"view_count":1}]`,
		command.KindListViews:      `[{"handle":1,"workspace_index":0,"mapped":true,"floating":false,"fullscreen":false,"x":0,"y":0,"w":960,"h":1080}]`,
		command.KindGetStatus:      `{"output_count":1,"workspace_count":1,"view_count":1,"focused_handle":1}`,
	}, nil)

	snap, err := fetchSnapshot("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.outputs) != 1 || snap.outputs[0].Name != "eDP-1" {
		t.Fatalf("unexpected outputs: %+v", snap.outputs)
	}
	if len(snap.workspaces) != 1 || !snap.workspaces[0].Active {
		t.Fatalf("unexpected workspaces: %+v", snap.workspaces)
	}
	if len(snap.views) != 1 || snap.views[0].Handle != 1 {
		t.Fatalf("unexpected views: %+v", snap.views)
	}
	if snap.status.FocusedHandle != 1 {
		t.Fatalf("unexpected status: %+v", snap.status)
	}
}

func TestFetchSnapshotPropagatesQueryError(t *testing.T) {
	withStubbedSendQuery(t, nil, errors.New("connect refused"))

	if _, err := fetchSnapshot(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	m := newModel("", 0)
	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Fatalf("expected quit command for key %q", key)
		}
	}
}
