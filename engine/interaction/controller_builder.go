package interaction

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithSensitivity sets the radians of rotation per pixel of drag.
//
// Parameters:
//   - k: the sensitivity (default 0.005)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSensitivity(k float32) ControllerBuilderOption {
	return func(c *controller) {
		c.sensitivity = k
	}
}

// WithTickStep sets the factor converting auto-rotate speed into radians per tick.
//
// Parameters:
//   - step: the tick step (default 0.01)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTickStep(step float32) ControllerBuilderOption {
	return func(c *controller) {
		c.tickStep = step
	}
}
