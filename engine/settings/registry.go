package settings

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownParam is returned when a name matches no registered control.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrInvalidValue is returned when a value cannot be converted to the parameter's kind or domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Registry holds the registered controls in panel order.
//
// Writes through Set come from the panel and fire the control's callback. Writers outside the panel
// (drag, auto-rotate, config reload) update the record and the scene themselves and then call
// UpdateDisplay so no control shows a stale value.
type Registry struct {
	controls  []Control
	byName    map[string]Control
	listeners []func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Control)}
}

// Add registers a control. Registering a second control with the same name replaces the first.
//
// Parameters:
//   - c: the control to register
//
// Returns:
//   - Control: c, for chaining
func (r *Registry) Add(c Control) Control {
	name := c.Param().Name
	if old, ok := r.byName[name]; ok {
		i := slices.Index(r.controls, old)
		r.controls[i] = c
	} else {
		r.controls = append(r.controls, c)
	}
	r.byName[name] = c
	return c
}

// AddFloat declares and registers a float control in one call.
func (r *Registry) AddFloat(p Param, ptr *float32, onChange func(float32)) *FloatControl {
	c := NewFloatControl(p, ptr, onChange)
	r.Add(c)
	return c
}

// AddBool declares and registers a bool control in one call.
func (r *Registry) AddBool(p Param, ptr *bool, onChange func(bool)) *BoolControl {
	c := NewBoolControl(p, ptr, onChange)
	r.Add(c)
	return c
}

// AddChoice declares and registers a choice control in one call.
func (r *Registry) AddChoice(p Param, ptr *string, onChange func(string)) *ChoiceControl {
	c := NewChoiceControl(p, ptr, onChange)
	r.Add(c)
	return c
}

// Control looks up a control by parameter name.
func (r *Registry) Control(name string) (Control, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Controls returns the controls in registration order.
func (r *Registry) Controls() []Control {
	return slices.Clone(r.controls)
}

// Groups returns the group names in the order their first control was registered.
func (r *Registry) Groups() []string {
	var groups []string
	for _, c := range r.controls {
		if g := c.Param().Group; !slices.Contains(groups, g) {
			groups = append(groups, g)
		}
	}
	return groups
}

// InGroup returns the controls of one group in registration order.
func (r *Registry) InGroup(group string) []Control {
	var out []Control
	for _, c := range r.controls {
		if c.Param().Group == group {
			out = append(out, c)
		}
	}
	return out
}

// Set performs a panel write on the named control.
//
// Parameters:
//   - name: the parameter name
//   - v: the new value
//
// Returns:
//   - error: ErrUnknownParam or ErrInvalidValue, wrapped with the parameter name
func (r *Registry) Set(name string, v any) error {
	c, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if err := c.Set(v); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Apply performs Set for every entry of values, in registration order, then refreshes every display.
// Entries that fail are skipped; all failures are joined into the returned error.
//
// Parameters:
//   - values: parameter name to value
//
// Returns:
//   - error: the joined failures, or nil
func (r *Registry) Apply(values map[string]any) error {
	var errs []error
	for _, c := range r.controls {
		name := c.Param().Name
		v, ok := values[name]
		if !ok {
			continue
		}
		if err := c.Set(v); err != nil {
			errs = append(errs, err)
		}
	}
	for name := range values {
		if _, ok := r.byName[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownParam, name))
		}
	}
	r.UpdateDisplay()
	return errors.Join(errs...)
}

// UpdateDisplay refreshes every control from the record and notifies display listeners.
func (r *Registry) UpdateDisplay() {
	for _, c := range r.controls {
		c.UpdateDisplay()
	}
	r.notify()
}

// OnDisplay registers a listener called after every Set, Apply and UpdateDisplay.
//
// Parameters:
//   - fn: the listener
func (r *Registry) OnDisplay(fn func()) {
	r.listeners = append(r.listeners, fn)
}

// Stale returns the names of controls whose displayed value differs from the record.
// An empty result means the display is in sync.
func (r *Registry) Stale() []string {
	var out []string
	for _, c := range r.controls {
		if c.Displayed() != c.Value() {
			out = append(out, c.Param().Name)
		}
	}
	return out
}

func (r *Registry) notify() {
	for _, fn := range r.listeners {
		fn()
	}
}
