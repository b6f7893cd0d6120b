package fetchimage

import (
	"image"

	"github.com/kean/FetchImage/pkg/dispatch"
	"github.com/kean/FetchImage/pkg/observe"
	"github.com/kean/FetchImage/pkg/pipeline"
)

// Controller fetches a single image through a [pipeline.Pipeline] and
// publishes the result reactively.
//
// Create with [New], subscribe to the observable fields, and call Fetch.
// A controller tracks one result, not per-request identity: while a load is
// in flight, or after a regular-quality image has been loaded, further
// Fetch calls are no-ops even if the request differs, until Reset.
//
// All methods must be called from the owning context. Call Dispose when the
// bound UI element goes away; it cancels any in-flight load and guarantees
// no callbacks are delivered into a dead controller.
type Controller struct {
	// Image is the currently displayed image, nil when none. It may hold a
	// partially decoded image while a load is still in flight.
	Image *observe.Observable[image.Image]
	// Error is the most recent terminal load failure, nil when none.
	// An error can be present while a previously loaded image remains set.
	Error *observe.Observable[error]
	// IsLoading reports whether a load attempt is in flight.
	IsLoading *observe.Observable[bool]
	// Progress is the byte progress of the current load attempt.
	Progress *observe.Observable[Progress]

	pipeline pipeline.Pipeline
	dispatch func(func())

	priority      pipeline.Priority
	loadedQuality Quality
	task          pipeline.Task
	token         *loadToken
	disposed      bool
}

// loadToken severs the callback linkage of a superseded load attempt.
// Callbacks capture the token by reference and drop themselves once it is
// cancelled, so a cancelled or disposed controller never observes a stray
// mutation.
type loadToken struct {
	cancelled bool
}

// Option configures a [Controller].
type Option func(*Controller)

// WithDispatcher sets the function used to marshal pipeline callbacks onto
// the owning context, overriding the package-level dispatcher registered
// with [dispatch.Register].
func WithDispatcher(fn func(callback func())) Option {
	return func(c *Controller) {
		c.dispatch = fn
	}
}

// New creates a controller backed by the given pipeline.
//
// Without [WithDispatcher], callbacks are marshaled through
// [dispatch.Dispatch]; if no dispatcher is registered there either, they
// run inline on the goroutine the pipeline fires them from, in which case
// the pipeline must deliver callbacks on the owning context itself.
func New(p pipeline.Pipeline, opts ...Option) *Controller {
	c := &Controller{
		Image:     observe.NewObservable[image.Image](nil),
		Error:     observe.NewObservable[error](nil),
		IsLoading: observe.NewObservableWithEquality(false, func(a, b bool) bool { return a == b }),
		Progress:  observe.NewObservable(Progress{}),
		pipeline:  p,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatch == nil {
		c.dispatch = func(cb func()) {
			if !dispatch.Dispatch(cb) {
				cb()
			}
		}
	}
	return c
}

// FetchURL fetches the image at the given URL.
func (c *Controller) FetchURL(url string) {
	c.fetch(pipeline.NewRequest(url), nil)
}

// FetchURLWithLowData fetches the image at url, falling back to lowDataURL
// when the network is constrained. The fallback request allows constrained
// network access.
func (c *Controller) FetchURLWithLowData(url, lowDataURL string) {
	low := pipeline.NewRequest(lowDataURL)
	low.AllowConstrainedNetwork = true
	c.fetch(pipeline.NewRequest(url), &low)
}

// Fetch fetches the image described by the request.
func (c *Controller) Fetch(request pipeline.Request) {
	c.fetch(request, nil)
}

// FetchWithLowData fetches the image described by request, falling back to
// lowData when the regular load fails because the network is constrained.
// Only one fallback level is supported; a failed fallback surfaces as Error.
func (c *Controller) FetchWithLowData(request, lowData pipeline.Request) {
	c.fetch(request, &lowData)
}

func (c *Controller) fetch(request pipeline.Request, lowData *pipeline.Request) {
	if c.disposed {
		return
	}
	// Single-result guard: an in-flight load or an already loaded
	// regular-quality image makes Fetch a no-op, regardless of request.
	if c.IsLoading.Value() || c.loadedQuality == QualityRegular {
		return
	}

	c.Error.Set(nil)

	// Synchronous cache probe: a regular hit finishes the fetch without
	// starting any asynchronous work.
	if img := c.pipeline.CachedImage(request); img != nil {
		c.IsLoading.Set(false)
		c.Image.Set(img)
		c.loadedQuality = QualityRegular
		return
	}

	// Optimistic low-data cache probe; the regular load still proceeds.
	if lowData != nil {
		if img := c.pipeline.CachedImage(*lowData); img != nil {
			c.Image.Set(img)
			c.loadedQuality = QualityLow
		}
	}

	c.IsLoading.Set(true)
	c.loadImage(request, lowData, QualityRegular)
}

func (c *Controller) loadImage(request pipeline.Request, lowData *pipeline.Request, quality Quality) {
	c.Progress.Set(Progress{})

	token := &loadToken{}
	c.token = token

	task := c.pipeline.LoadImage(request,
		func(update pipeline.ProgressUpdate) {
			c.dispatch(func() {
				if token.cancelled || c.token != token {
					return
				}
				c.Progress.Set(Progress{Completed: update.Completed, Total: update.Total})
				if update.Partial != nil {
					c.Image.Set(update.Partial)
				}
			})
		},
		func(img image.Image, err error) {
			c.dispatch(func() {
				if token.cancelled || c.token != token {
					return
				}
				c.finishLoad(lowData, quality, img, err)
			})
		},
	)

	// The pipeline may complete synchronously; the token is already gone
	// then and the finished task must not be retained.
	if c.token != token {
		return
	}
	c.task = task
	if c.priority != request.Priority {
		task.SetPriority(c.priority)
	}
}

func (c *Controller) finishLoad(lowData *pipeline.Request, quality Quality, img image.Image, err error) {
	c.token = nil
	c.task = nil

	if err == nil {
		c.IsLoading.Set(false)
		c.Image.Set(img)
		c.loadedQuality = quality
		return
	}

	if quality == QualityRegular && lowData != nil && pipeline.IsNetworkConstrained(err) {
		// A low-data image already on screen beats an error; otherwise run
		// the one-level-deep fallback.
		if c.loadedQuality == QualityLow {
			c.IsLoading.Set(false)
			return
		}
		c.loadImage(*lowData, nil, QualityLow)
		return
	}

	c.Error.Set(err)
	c.IsLoading.Set(false)
}

// Cancel cancels any in-flight load. After Cancel returns, no further
// progress or completion updates are observed, even if the underlying
// operation is still unwinding. The last committed Image and Error survive.
// Cancel is idempotent.
func (c *Controller) Cancel() {
	if c.disposed {
		return
	}
	c.cancelLoad()
}

func (c *Controller) cancelLoad() {
	if c.token != nil {
		c.token.cancelled = true
		c.token = nil
	}
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
	c.IsLoading.Set(false)
}

// Reset cancels any in-flight load and returns all observable state to its
// construction-time defaults, including the recorded loaded quality.
func (c *Controller) Reset() {
	if c.disposed {
		return
	}
	c.cancelLoad()
	c.Image.Set(nil)
	c.Error.Set(nil)
	c.Progress.Set(Progress{})
	c.loadedQuality = QualityNone
}

// Priority returns the priority of the in-flight load, or the locally
// configured priority when no load is running.
func (c *Controller) Priority() pipeline.Priority {
	if c.task != nil {
		return c.task.Priority()
	}
	return c.priority
}

// SetPriority adjusts the priority of the in-flight load, if any, and is
// remembered and applied to the next started load otherwise.
func (c *Controller) SetPriority(priority pipeline.Priority) {
	c.priority = priority
	if c.task != nil {
		c.task.SetPriority(priority)
	}
}

// LoadedQuality returns the quality tier of the currently displayed image.
func (c *Controller) LoadedQuality() Quality {
	return c.loadedQuality
}

// View returns a renderable projection of the current image.
func (c *Controller) View() ImageView {
	return ImageView{source: c.Image.Value()}
}

// Dispose cancels any in-flight load and permanently quiesces the
// controller. After Dispose every method is a no-op. Dispose is idempotent.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.cancelLoad()
	c.disposed = true
}
