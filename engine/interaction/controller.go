package interaction

import "github.com/Carmen-Shannon/prism/common"

const (
	// DefaultSensitivity is the radians of rotation per pixel of pointer travel.
	DefaultSensitivity float32 = 0.005
	// DefaultTickStep scales the auto-rotate speed into radians per tick.
	DefaultTickStep float32 = 0.01
)

// State is the pointer state of the controller.
type State int

const (
	// StateIdle means no button is held; auto-rotate may run.
	StateIdle State = iota
	// StateDragging means the button went down inside the window and has not been released.
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Target is what the controller rotates. Implementations store the angles in their canonical
// record, apply them to the scene and refresh any displayed values.
type Target interface {
	// Orientation returns the current canonical angles in radians.
	Orientation() (x, y, z float32)
	// SetOrientation writes new canonical angles.
	SetOrientation(x, y, z float32)
	// AutoRotate reports whether auto-rotate is enabled and at what speed.
	AutoRotate() (enabled bool, speed float32)
}

// axis accumulates one angle in float64 so long runs of small steps do not drift at float32
// precision. It follows the target again whenever the target holds a value it did not write.
type axis struct {
	acc     float64
	written float32
	synced  bool
}

func (a *axis) load(v float32) {
	if !a.synced || v != a.written {
		a.acc = float64(v)
	}
}

// add advances the angle, wraps it into [-π, π) and returns it narrowed for the target.
func (a *axis) add(delta float64) float32 {
	a.acc = common.WrapAngle(a.acc + delta)
	a.written = float32(a.acc)
	a.synced = true
	return a.written
}

// controller is the implementation of the Controller interface.
type controller struct {
	target      Target
	state       State
	lastX       float32
	lastY       float32
	sensitivity float32
	tickStep    float32
	rotX, rotY  axis
}

// Controller turns pointer drags and frame ticks into orientation writes.
//
// Idle goes to Dragging on PointerDown and back to Idle on PointerUp or PointerLeave. Moves while
// dragging rotate Y by Δx and X by Δy. Ticks while idle advance Y by speed times the tick step when
// auto-rotate is on. A held pointer suppresses auto-rotate even when it is not moving.
// Written angles are wrapped into [-π, π).
type Controller interface {
	// State returns the current pointer state.
	//
	// Returns:
	//   - State: idle or dragging
	State() State

	// PointerDown starts a drag at the given client position.
	//
	// Parameters:
	//   - x, y: client coordinates in pixels
	PointerDown(x, y float32)

	// PointerMove rotates the target by the travel since the previous down or move event.
	// It does nothing while idle.
	//
	// Parameters:
	//   - x, y: client coordinates in pixels
	PointerMove(x, y float32)

	// PointerUp ends a drag.
	PointerUp()

	// PointerLeave ends a drag when the pointer leaves the window.
	PointerLeave()

	// Tick advances auto-rotation by one frame.
	//
	// Returns:
	//   - bool: true if the orientation was written
	Tick() bool
}

var _ Controller = &controller{}

// NewController creates a Controller rotating target.
//
// Parameters:
//   - target: the orientation owner
//   - options: functional options
//
// Returns:
//   - Controller: the idle controller
func NewController(target Target, options ...ControllerBuilderOption) Controller {
	c := &controller{
		target:      target,
		state:       StateIdle,
		sensitivity: DefaultSensitivity,
		tickStep:    DefaultTickStep,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) State() State {
	return c.state
}

func (c *controller) PointerDown(x, y float32) {
	c.state = StateDragging
	c.lastX, c.lastY = x, y
}

func (c *controller) PointerMove(x, y float32) {
	if c.state != StateDragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	rx, ry, rz := c.target.Orientation()
	c.rotX.load(rx)
	c.rotY.load(ry)
	k := float64(c.sensitivity)
	c.target.SetOrientation(c.rotX.add(float64(dy)*k), c.rotY.add(float64(dx)*k), rz)
}

func (c *controller) PointerUp() {
	c.state = StateIdle
}

func (c *controller) PointerLeave() {
	c.state = StateIdle
}

func (c *controller) Tick() bool {
	if c.state == StateDragging {
		return false
	}
	enabled, speed := c.target.AutoRotate()
	if !enabled {
		return false
	}
	rx, ry, rz := c.target.Orientation()
	c.rotY.load(ry)
	c.target.SetOrientation(rx, c.rotY.add(float64(speed)*float64(c.tickStep)), rz)
	return true
}
