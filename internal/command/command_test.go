package command

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

type recordingTarget struct {
	calls []string
	err   error
}

func (r *recordingTarget) Quit(code int32)                            { r.calls = append(r.calls, "quit") }
func (r *recordingTarget) FocusDirection(d Direction) error            { r.calls = append(r.calls, "focus:"+d.String()); return r.err }
func (r *recordingTarget) FocusCycle() error                           { r.calls = append(r.calls, "focus:cycle"); return r.err }
func (r *recordingTarget) Exec(argv []string) error                    { r.calls = append(r.calls, "exec"); return r.err }
func (r *recordingTarget) Bind(mods uint32, key string, inner *Data)   { r.calls = append(r.calls, "bind") }
func (r *recordingTarget) CloseFocused() error                         { r.calls = append(r.calls, "close"); return r.err }
func (r *recordingTarget) WorkspaceSwitch(n int32) error               { r.calls = append(r.calls, "wsswitch"); return r.err }
func (r *recordingTarget) WorkspaceMove(n int32) error                 { r.calls = append(r.calls, "wsmove"); return r.err }
func (r *recordingTarget) ToggleFloating() error                       { r.calls = append(r.calls, "togglefloat"); return r.err }
func (r *recordingTarget) Move(dx, dy int32) error                     { r.calls = append(r.calls, "move"); return r.err }
func (r *recordingTarget) Resize(w, h int32) error                     { r.calls = append(r.calls, "resize"); return r.err }
func (r *recordingTarget) InsertIntoColumn() error                     { r.calls = append(r.calls, "insert"); return r.err }
func (r *recordingTarget) PopFromColumn() error                        { r.calls = append(r.calls, "pop"); return r.err }
func (r *recordingTarget) ConfigMouseMod(mods uint32)                  { r.calls = append(r.calls, "cfgmod") }
func (r *recordingTarget) ConfigGap(px int32)                          { r.calls = append(r.calls, "cfggap") }
func (r *recordingTarget) ConfigFocusColor(rr, g, b, a float64)        { r.calls = append(r.calls, "cfgcolor") }
func (r *recordingTarget) CycleWidth() error                          { r.calls = append(r.calls, "cyclewidth"); return r.err }
func (r *recordingTarget) ListOutputs() string                        { r.calls = append(r.calls, "listoutputs"); return "outputs" }
func (r *recordingTarget) ListWorkspaces() string                     { r.calls = append(r.calls, "listworkspaces"); return "workspaces" }
func (r *recordingTarget) ListViews() string                          { r.calls = append(r.calls, "listviews"); return "views" }
func (r *recordingTarget) GetStatus() string                          { r.calls = append(r.calls, "getstatus"); return "status" }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Data{
		{Kind: KindQuit, Code: 1},
		{Kind: KindFocus, Direction: DirCycle},
		{Kind: KindExec, Argv: []string{"term", "-e", "zsh"}},
		{Kind: KindBind, BindMods: 8, BindKey: "Return", BindInner: &Data{Kind: KindExec, Argv: []string{"term"}}},
		{Kind: KindClose},
		{Kind: KindWorkspaceSwitch, N: 3},
		{Kind: KindToggleFloating},
		{Kind: KindMove, DX: -5, DY: 10},
		{Kind: KindResize, W: 640, H: 480},
		{Kind: KindInsertIntoColumn},
		{Kind: KindPopFromColumn},
		{Kind: KindConfigMouseMod, Mods: 64},
		{Kind: KindConfigGap, Gap: 12},
		{Kind: KindConfigFocusColor, R: 0.1, G: 0.2, B: 0.3, A: 1},
		{Kind: KindCycleWidth},
		{Kind: KindListOutputs},
		{Kind: KindListWorkspaces},
		{Kind: KindListViews},
		{Kind: KindGetStatus},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		if err := Encode(&buf, c); err != nil {
			t.Fatalf("Encode(%v): %v", c.Kind, err)
		}
		got, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(%v): %v", c.Kind, err)
		}
		if !reflect.DeepEqual(got, c) {
			t.Fatalf("round-trip mismatch for %v: got %+v want %+v", c.Kind, got, c)
		}
	}
}

func TestDispatchFocusCycleRoutesSeparately(t *testing.T) {
	rt := &recordingTarget{}
	Dispatch(&Data{Kind: KindFocus, Direction: DirCycle}, rt)
	if rt.calls[0] != "focus:cycle" {
		t.Fatalf("expected cycle routed separately, got %v", rt.calls)
	}
}

func TestDispatchErrorBecomesMessage(t *testing.T) {
	rt := &recordingTarget{err: errors.New("boom")}
	res := Dispatch(&Data{Kind: KindClose}, rt)
	if res.Message != "boom" {
		t.Fatalf("expected error message propagated, got %q", res.Message)
	}
}

func TestParseModifiersCombinesBits(t *testing.T) {
	mods, err := ParseModifiers("logo+shift")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mods != ModLogo|ModShift {
		t.Fatalf("expected logo|shift, got %b", mods)
	}
}

func TestParseModifiersRejectsUnknown(t *testing.T) {
	if _, err := ParseModifiers("hyper"); err == nil {
		t.Fatalf("expected error for unknown modifier")
	}
}

func TestDispatchQueryReturnsPayload(t *testing.T) {
	rt := &recordingTarget{}
	res := Dispatch(&Data{Kind: KindGetStatus}, rt)
	if res.Message != "status" {
		t.Fatalf("expected status payload, got %q", res.Message)
	}
	if !KindGetStatus.IsQuery() || KindQuit.IsQuery() {
		t.Fatalf("IsQuery misclassified a kind")
	}
}

func TestKeybindingTableLatestBindWins(t *testing.T) {
	kt := NewKeybindingTable()
	kt.Bind(8, "Return", &Data{Kind: KindExec, Argv: []string{"term"}})
	kt.Bind(8, "Return", &Data{Kind: KindExec, Argv: []string{"browser"}})

	d, ok := kt.Lookup(8, "return")
	if !ok {
		t.Fatalf("expected binding found")
	}
	if d.Argv[0] != "browser" {
		t.Fatalf("expected second bind to win, got %v", d.Argv)
	}
}
