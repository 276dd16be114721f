package loader

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism/common"
)

// Result is the outcome of one asynchronous load.
type Result struct {
	Path    string
	Texture *common.TextureStagingData
	Err     error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	backend loaderBackend
	cache   map[string]*common.TextureStagingData

	pool      worker.DynamicWorkerPool
	workers   int
	queueSize int
	results   chan Result
	pending   atomic.Int32
	nextID    atomic.Int64
	maxWidth  int
}

// Loader decodes environment images and caches them by path.
//
// Load runs the decode on a worker pool and returns immediately. The result is handed back on the
// caller's own goroutine through Drain, so the scene is only ever touched from the frame loop. A
// failed load is reported in its Result and nothing else changes.
type Loader interface {
	// Load starts decoding the image at path in the background. A cached path completes without decoding.
	//
	// Parameters:
	//   - path: the file path to load
	Load(path string)

	// LoadSync decodes the image at path on the calling goroutine and caches it.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded image
	//   - error: error if loading fails
	LoadSync(path string) (*common.TextureStagingData, error)

	// LoadReader decodes an image from a stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing encoded data
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded image
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*common.TextureStagingData, error)

	// Get retrieves a cached image by path. Returns nil if not found.
	//
	// Parameters:
	//   - path: the cache key
	//
	// Returns:
	//   - *common.TextureStagingData: the cached image or nil
	Get(path string) *common.TextureStagingData

	// Pending returns the number of background loads whose results have not been drained.
	//
	// Returns:
	//   - int: the count
	Pending() int

	// Drain hands every finished background result to fn without blocking.
	//
	// Parameters:
	//   - fn: called once per finished result
	//
	// Returns:
	//   - int: the number of results handed over
	Drain(fn func(Result)) int
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the image backend and the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		cache:     make(map[string]*common.TextureStagingData),
		workers:   1,
		queueSize: 4,
		maxWidth:  4096,
	}
	for _, option := range options {
		option(l)
	}
	l.backend = newImageLoaderBackend(l.maxWidth)
	l.results = make(chan Result, l.queueSize)
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, 5*time.Second)
	return l
}

func (l *loader) Load(path string) {
	l.pending.Add(1)
	common.Logger().Info("loading environment", slog.String("path", path))
	l.pool.SubmitTask(worker.Task{
		ID: int(l.nextID.Add(1)),
		Do: func() (any, error) {
			tex, err := l.LoadSync(path)
			l.results <- Result{Path: path, Texture: tex, Err: err}
			return tex, err
		},
	})
}

func (l *loader) LoadSync(path string) (*common.TextureStagingData, error) {
	if tex := l.Get(path); tex != nil {
		return tex, nil
	}
	tex, err := l.backend.Load(path)
	if err != nil {
		return nil, err
	}
	l.store(path, tex)
	return tex, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*common.TextureStagingData, error) {
	tex, err := l.backend.LoadReader(name, r)
	if err != nil {
		return nil, err
	}
	l.store(name, tex)
	return tex, nil
}

func (l *loader) store(key string, tex *common.TextureStagingData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[key] = tex
}

func (l *loader) Get(path string) *common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[path]
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Drain(fn func(Result)) int {
	n := 0
	for {
		select {
		case r := <-l.results:
			l.pending.Add(-1)
			n++
			fn(r)
		default:
			return n
		}
	}
}
