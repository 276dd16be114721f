package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMaxWidth is an option builder that sets the widest image kept at full size.
// Wider images are resized to this width, preserving aspect ratio. 0 disables resizing.
//
// Parameters:
//   - width: the maximum width in pixels (default 4096)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the max width option to a loader
func WithMaxWidth(width int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxWidth = width
	}
}

// WithWorkers is an option builder that sets how many background decodes may run at once.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(1, n)
	}
}

// WithQueueSize is an option builder that sets how many loads may be queued or awaiting Drain.
//
// Parameters:
//   - n: the queue size (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.queueSize = max(1, n)
	}
}
