package panel

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*panel)

// WithDisplay sets the surface the status line is written to.
//
// Parameters:
//   - d: the display, typically the window
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithDisplay(d Display) PanelBuilderOption {
	return func(p *panel) {
		p.display = d
	}
}

// WithTitle sets the prefix of the status line.
//
// Parameters:
//   - title: the prefix (default "prism")
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithTitle(title string) PanelBuilderOption {
	return func(p *panel) {
		p.title = title
	}
}
