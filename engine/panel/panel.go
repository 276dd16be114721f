package panel

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/settings"
)

// Display is the surface a panel writes its one-line status to. The window title satisfies it.
type Display interface {
	// SetTitle replaces the visible status text.
	SetTitle(title string)
}

// panel is the implementation of the Panel interface.
type panel struct {
	registry *settings.Registry
	display  Display
	title    string
	selected int
	status   string
	shown    bool
}

// Panel presents a settings registry as labeled controls organized into groups and edits them from
// the keyboard.
//
// Up and Down move the selection, Left and Right nudge the selected control by one step, Enter toggles
// or cycles it and Tab jumps to the first control of the next group. The selected control is written
// to the Display on every refresh. The panel refreshes itself whenever the registry reports a display
// change, so values written by drag or auto-rotate are never shown stale.
type Panel interface {
	// HandleKey applies a navigation or edit key.
	//
	// Parameters:
	//   - key: the virtual key code (see common.Key*)
	//
	// Returns:
	//   - bool: true if the key was consumed
	HandleKey(key uint32) bool

	// Selected returns the selected control, or nil if the registry is empty.
	//
	// Returns:
	//   - settings.Control: the selected control
	Selected() settings.Control

	// Select moves the selection to the named control.
	//
	// Parameters:
	//   - name: the parameter name
	//
	// Returns:
	//   - bool: false if no control has that name
	Select(name string) bool

	// Refresh rebuilds the status line from the displayed values and pushes it to the Display.
	Refresh()

	// Status returns the last status line.
	//
	// Returns:
	//   - string: "<title> | <group> > <label>: <value>"
	Status() string

	// Listing renders every group and control with its displayed value, one per line.
	//
	// Returns:
	//   - string: the listing
	Listing() string

	// LogListing writes the listing to the engine logger at info level.
	LogListing()
}

var _ Panel = &panel{}

// NewPanel creates a Panel over registry and subscribes it to the registry's display updates.
//
// Parameters:
//   - registry: the settings registry to present
//   - options: functional options
//
// Returns:
//   - Panel: the panel with the first control selected
func NewPanel(registry *settings.Registry, options ...PanelBuilderOption) Panel {
	p := &panel{
		registry: registry,
		title:    "prism",
	}
	for _, opt := range options {
		opt(p)
	}
	registry.OnDisplay(p.Refresh)
	p.Refresh()
	return p
}

func (p *panel) HandleKey(key uint32) bool {
	controls := p.registry.Controls()
	if len(controls) == 0 {
		return false
	}
	p.selected = min(p.selected, len(controls)-1)

	switch key {
	case common.KeyUp:
		p.selected = (p.selected - 1 + len(controls)) % len(controls)
		p.Refresh()
	case common.KeyDown:
		p.selected = (p.selected + 1) % len(controls)
		p.Refresh()
	case common.KeyTab:
		p.selected = p.nextGroupStart(controls)
		p.Refresh()
	case common.KeyLeft:
		p.edit(controls[p.selected], -1)
	case common.KeyRight, common.KeyEnter:
		p.edit(controls[p.selected], 1)
	default:
		return false
	}
	return true
}

// edit nudges a control and lets the registry listeners, including this panel, redraw.
func (p *panel) edit(c settings.Control, steps int) {
	c.Nudge(steps)
	p.registry.UpdateDisplay()
	common.Logger().Debug("panel edit",
		slog.String("param", c.Param().Name),
		slog.String("value", c.Format()),
	)
}

func (p *panel) nextGroupStart(controls []settings.Control) int {
	groups := p.registry.Groups()
	cur := slices.Index(groups, controls[p.selected].Param().Group)
	next := groups[(cur+1)%len(groups)]
	for i, c := range controls {
		if c.Param().Group == next {
			return i
		}
	}
	return p.selected
}

func (p *panel) Selected() settings.Control {
	controls := p.registry.Controls()
	if len(controls) == 0 {
		return nil
	}
	return controls[min(p.selected, len(controls)-1)]
}

func (p *panel) Select(name string) bool {
	for i, c := range p.registry.Controls() {
		if c.Param().Name == name {
			p.selected = i
			p.Refresh()
			return true
		}
	}
	return false
}

func (p *panel) Refresh() {
	prev := p.status
	c := p.Selected()
	if c == nil {
		p.status = p.title
	} else {
		param := c.Param()
		p.status = fmt.Sprintf("%s | %s > %s: %s", p.title, param.Group, param.Label, c.Format())
	}
	if p.display == nil || (p.shown && p.status == prev) {
		return
	}
	p.display.SetTitle(p.status)
	p.shown = true
}

func (p *panel) Status() string {
	return p.status
}

func (p *panel) Listing() string {
	var b strings.Builder
	sel := p.Selected()
	for _, g := range p.registry.Groups() {
		fmt.Fprintf(&b, "[%s]\n", g)
		for _, c := range p.registry.InGroup(g) {
			marker := " "
			if c == sel {
				marker = ">"
			}
			fmt.Fprintf(&b, "%s %-16s %s\n", marker, c.Param().Label, c.Format())
		}
	}
	return b.String()
}

func (p *panel) LogListing() {
	common.Logger().Info("control panel\n" + p.Listing())
}
