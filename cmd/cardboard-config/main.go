// Command cardboard-config is an interactive first-run wizard for
// cardboard's YAML configuration: inter-tile gap, mouse modifier, and
// focus border color.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/config"
)

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "cardboard-config: stdin/stdout must be a terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardboard-config: load: %v\n", err)
		os.Exit(1)
	}

	w := newWizard(cfg)
	form := w.buildForm()
	if err := form.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardboard-config: %v\n", err)
		os.Exit(1)
	}

	if err := w.applyForm(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cardboard-config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "cardboard-config: save: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("configuration saved")
}

// wizard holds the string-bound form fields the way termtile's
// GeneralTab binds huh.Input fields before converting them back into a
// typed config on submit.
type wizard struct {
	fGapSize     string
	fMouseMod    string
	fAnimMillis  string
	fFocusColorR string
	fFocusColorG string
	fFocusColorB string
	fFocusColorA string
}

func newWizard(cfg *config.Config) *wizard {
	return &wizard{
		fGapSize:     strconv.Itoa(int(cfg.GapSize)),
		fMouseMod:    modifierString(cfg.MouseMods),
		fAnimMillis:  strconv.Itoa(cfg.AnimationMillis),
		fFocusColorR: strconv.FormatFloat(cfg.FocusColor.R, 'f', -1, 64),
		fFocusColorG: strconv.FormatFloat(cfg.FocusColor.G, 'f', -1, 64),
		fFocusColorB: strconv.FormatFloat(cfg.FocusColor.B, 'f', -1, 64),
		fFocusColorA: strconv.FormatFloat(cfg.FocusColor.A, 'f', -1, 64),
	}
}

func (w *wizard) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("gap_size").
				Title("Gap Size").
				Description("Pixels between tiled views").
				Value(&w.fGapSize),

			huh.NewInput().
				Key("mouse_mod").
				Title("Mouse Modifier").
				Description("Held modifier(s) for mouse move/resize grabs, e.g. logo or ctrl+alt").
				Value(&w.fMouseMod),

			huh.NewInput().
				Key("animation_millis").
				Title("Animation Tick (ms)").
				Description("Fixed re-arm period for the move/resize animation timer").
				Value(&w.fAnimMillis),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("focus_color_r").
				Title("Focus Color: R").
				Description("0.0 to 1.0").
				Value(&w.fFocusColorR),
			huh.NewInput().
				Key("focus_color_g").
				Title("Focus Color: G").
				Value(&w.fFocusColorG),
			huh.NewInput().
				Key("focus_color_b").
				Title("Focus Color: B").
				Value(&w.fFocusColorB),
			huh.NewInput().
				Key("focus_color_a").
				Title("Focus Color: A").
				Value(&w.fFocusColorA),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

// applyForm converts the wizard's string fields back onto cfg, the same
// shape as GeneralTab.applyForm: each field parses independently and a
// bad value leaves the prior setting untouched, except the modifier and
// color fields, which must parse cleanly since cardboard's config has no
// separate validation pass for them beyond Config.Validate.
func (w *wizard) applyForm(cfg *config.Config) error {
	if v, err := strconv.Atoi(w.fGapSize); err == nil && v >= 0 {
		cfg.GapSize = int32(v)
	}
	if v, err := strconv.Atoi(w.fAnimMillis); err == nil && v > 0 {
		cfg.AnimationMillis = v
	}

	mods, err := command.ParseModifiers(w.fMouseMod)
	if err != nil {
		return fmt.Errorf("mouse modifier: %w", err)
	}
	cfg.MouseMods = mods

	r, err := strconv.ParseFloat(w.fFocusColorR, 64)
	if err != nil {
		return fmt.Errorf("focus color r: %w", err)
	}
	g, err := strconv.ParseFloat(w.fFocusColorG, 64)
	if err != nil {
		return fmt.Errorf("focus color g: %w", err)
	}
	b, err := strconv.ParseFloat(w.fFocusColorB, 64)
	if err != nil {
		return fmt.Errorf("focus color b: %w", err)
	}
	a, err := strconv.ParseFloat(w.fFocusColorA, 64)
	if err != nil {
		return fmt.Errorf("focus color a: %w", err)
	}
	cfg.FocusColor = config.Color{R: r, G: g, B: b, A: a}

	return nil
}

// modifierString renders a modifier bitmask back into the chord syntax
// command.ParseModifiers accepts, so re-editing the wizard round-trips.
func modifierString(mods uint32) string {
	var parts []string
	if mods&command.ModShift != 0 {
		parts = append(parts, "shift")
	}
	if mods&command.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if mods&command.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if mods&command.ModMod3 != 0 {
		parts = append(parts, "mod3")
	}
	if mods&command.ModMod4 != 0 {
		parts = append(parts, "mod4")
	}
	if mods&command.ModMod5 != 0 {
		parts = append(parts, "mod5")
	}
	if mods&command.ModLogo != 0 {
		parts = append(parts, "logo")
	}
	if len(parts) == 0 {
		return "logo"
	}
	return strings.Join(parts, "+")
}
