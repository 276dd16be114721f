package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/chewxy/math32"
)

// Control binds one declared parameter to a field of the record and to a change callback.
// It also remembers the value it last displayed, so a panel can tell a stale display from a fresh one.
type Control interface {
	// Param returns the parameter declaration.
	//
	// Returns:
	//   - Param: the declaration
	Param() Param

	// Value returns the current record value (float32, bool or string).
	//
	// Returns:
	//   - any: the value
	Value() any

	// Displayed returns the value shown by the control since its last UpdateDisplay or Set.
	//
	// Returns:
	//   - any: the displayed value
	Displayed() any

	// Set writes a panel-originated value. The value is converted and limited to the declared domain,
	// stored in the record, displayed, and passed to the change callback.
	//
	// Parameters:
	//   - v: the new value
	//
	// Returns:
	//   - error: ErrInvalidValue if v cannot be converted
	Set(v any) error

	// Nudge moves the value by steps in its domain: steps*Step for floats, a toggle for bools
	// (any non-zero steps) and a wrapping move through the options for choices. Floats declared
	// with Wrap step from the stored value and wrap around the range instead of clamping.
	//
	// Parameters:
	//   - steps: signed number of steps
	Nudge(steps int)

	// UpdateDisplay copies the record value into the displayed value.
	UpdateDisplay()

	// Format renders the displayed value as text.
	//
	// Returns:
	//   - string: the formatted value
	Format() string
}

var (
	_ Control = &FloatControl{}
	_ Control = &BoolControl{}
	_ Control = &ChoiceControl{}
)

// FloatControl binds a ranged float parameter.
type FloatControl struct {
	param     Param
	ptr       *float32
	onChange  func(float32)
	displayed float32
}

// NewFloatControl binds p to *ptr. onChange may be nil.
func NewFloatControl(p Param, ptr *float32, onChange func(float32)) *FloatControl {
	return &FloatControl{param: p, ptr: ptr, onChange: onChange, displayed: *ptr}
}

func (c *FloatControl) Param() Param   { return c.param }
func (c *FloatControl) Value() any     { return *c.ptr }
func (c *FloatControl) Displayed() any { return c.displayed }
func (c *FloatControl) UpdateDisplay() { c.displayed = *c.ptr }

func (c *FloatControl) Set(v any) error {
	f, err := toFloat(v)
	if err != nil {
		return fmt.Errorf("%s: %w", c.param.Name, err)
	}
	c.write(f)
	return nil
}

func (c *FloatControl) Nudge(steps int) {
	f := *c.ptr + float32(steps)*c.param.Step
	if c.param.Wrap {
		f = float32(common.Wrap(float64(f), float64(c.param.Min), float64(c.param.Max)))
	}
	c.write(f)
}

func (c *FloatControl) write(f float32) {
	f = common.Clamp(f, c.param.Min, c.param.Max)
	*c.ptr = f
	c.displayed = f
	if c.onChange != nil {
		c.onChange(f)
	}
}

func (c *FloatControl) Format() string {
	return strconv.FormatFloat(float64(c.displayed), 'f', decimals(c.param.Step), 32)
}

// BoolControl binds a boolean parameter.
type BoolControl struct {
	param     Param
	ptr       *bool
	onChange  func(bool)
	displayed bool
}

// NewBoolControl binds p to *ptr. onChange may be nil.
func NewBoolControl(p Param, ptr *bool, onChange func(bool)) *BoolControl {
	return &BoolControl{param: p, ptr: ptr, onChange: onChange, displayed: *ptr}
}

func (c *BoolControl) Param() Param   { return c.param }
func (c *BoolControl) Value() any     { return *c.ptr }
func (c *BoolControl) Displayed() any { return c.displayed }
func (c *BoolControl) UpdateDisplay() { c.displayed = *c.ptr }

func (c *BoolControl) Set(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%s: %w: want bool, got %T", c.param.Name, ErrInvalidValue, v)
	}
	c.write(b)
	return nil
}

func (c *BoolControl) Nudge(steps int) {
	if steps != 0 {
		c.write(!*c.ptr)
	}
}

func (c *BoolControl) write(b bool) {
	*c.ptr = b
	c.displayed = b
	if c.onChange != nil {
		c.onChange(b)
	}
}

func (c *BoolControl) Format() string {
	if c.displayed {
		return "on"
	}
	return "off"
}

// ChoiceControl binds an enumerated string parameter.
type ChoiceControl struct {
	param     Param
	ptr       *string
	onChange  func(string)
	displayed string
}

// NewChoiceControl binds p to *ptr. onChange may be nil.
func NewChoiceControl(p Param, ptr *string, onChange func(string)) *ChoiceControl {
	return &ChoiceControl{param: p, ptr: ptr, onChange: onChange, displayed: *ptr}
}

func (c *ChoiceControl) Param() Param   { return c.param }
func (c *ChoiceControl) Value() any     { return *c.ptr }
func (c *ChoiceControl) Displayed() any { return c.displayed }
func (c *ChoiceControl) UpdateDisplay() { c.displayed = *c.ptr }

// Set accepts an option name (case-insensitive) or an option index.
func (c *ChoiceControl) Set(v any) error {
	switch t := v.(type) {
	case string:
		for _, o := range c.param.Options {
			if strings.EqualFold(o, t) {
				c.write(o)
				return nil
			}
		}
		return fmt.Errorf("%s: %w: %q is not one of %v", c.param.Name, ErrInvalidValue, t, c.param.Options)
	default:
		f, err := toFloat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", c.param.Name, err)
		}
		i := int(f)
		if float32(i) != f || i < 0 || i >= len(c.param.Options) {
			return fmt.Errorf("%s: %w: index %v out of range", c.param.Name, ErrInvalidValue, v)
		}
		c.write(c.param.Options[i])
		return nil
	}
}

func (c *ChoiceControl) Nudge(steps int) {
	n := len(c.param.Options)
	if n == 0 || steps == 0 {
		return
	}
	i := slices.Index(c.param.Options, *c.ptr)
	i = ((i+steps)%n + n) % n
	c.write(c.param.Options[i])
}

func (c *ChoiceControl) write(s string) {
	*c.ptr = s
	c.displayed = s
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *ChoiceControl) Format() string {
	return c.displayed
}

func toFloat(v any) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case float64:
		return float32(t), nil
	case int:
		return float32(t), nil
	case int64:
		return float32(t), nil
	case int32:
		return float32(t), nil
	}
	return 0, fmt.Errorf("%w: want number, got %T", ErrInvalidValue, v)
}

// decimals returns how many fractional digits are needed to show values on a step grid.
func decimals(step float32) int {
	d := 0
	for step > 0 && d < 6 && math32.Abs(step-math32.Floor(step+0.5)) > 1e-4 {
		step *= 10
		d++
	}
	return d
}
