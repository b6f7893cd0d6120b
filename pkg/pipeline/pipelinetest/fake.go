// Package pipelinetest provides a scriptable fake pipeline for testing
// fetch controllers without a real image loading backend.
//
// A test seeds the cache and then drives each load by hand:
//
//	fake := pipelinetest.NewFakePipeline()
//	fake.SetCached("https://example.com/a.jpg", img)
//	// ... controller.Fetch(...)
//	task := fake.LastTask()
//	task.SendProgress(50, 100, nil)
//	task.Succeed(img)
//
// Callbacks fire synchronously on the goroutine that calls SendProgress,
// Succeed, or Fail. They fire even after Cancel, so tests can prove that a
// controller ignores callbacks from a superseded load.
package pipelinetest

import (
	"image"
	"sync"

	"github.com/kean/FetchImage/pkg/pipeline"
)

// FakePipeline is a scriptable in-memory implementation of
// [pipeline.Pipeline]. Safe for concurrent use.
type FakePipeline struct {
	mu     sync.Mutex
	cached map[string]image.Image
	tasks  []*FakeTask
}

// NewFakePipeline creates an empty fake pipeline.
func NewFakePipeline() *FakePipeline {
	return &FakePipeline{cached: make(map[string]image.Image)}
}

// SetCached seeds the synchronous cache for the given URL.
func (p *FakePipeline) SetCached(url string, img image.Image) {
	p.mu.Lock()
	p.cached[url] = img
	p.mu.Unlock()
}

// CachedImage implements [pipeline.Pipeline].
func (p *FakePipeline) CachedImage(request pipeline.Request) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cached[request.URL]
}

// LoadImage implements [pipeline.Pipeline]. The returned task does nothing
// until the test drives it via SendProgress, Succeed, or Fail.
func (p *FakePipeline) LoadImage(request pipeline.Request, onProgress func(pipeline.ProgressUpdate), onCompletion func(image.Image, error)) pipeline.Task {
	task := &FakeTask{
		request:      request,
		priority:     request.Priority,
		onProgress:   onProgress,
		onCompletion: onCompletion,
	}
	p.mu.Lock()
	p.tasks = append(p.tasks, task)
	p.mu.Unlock()
	return task
}

// TaskCount returns the number of loads started so far.
func (p *FakePipeline) TaskCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// Task returns the i-th started load, in start order.
func (p *FakePipeline) Task(i int) *FakeTask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks[i]
}

// LastTask returns the most recently started load, or nil if none started.
func (p *FakePipeline) LastTask() *FakeTask {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tasks) == 0 {
		return nil
	}
	return p.tasks[len(p.tasks)-1]
}

// FakeTask is a hand-driven [pipeline.Task].
type FakeTask struct {
	mu           sync.Mutex
	request      pipeline.Request
	priority     pipeline.Priority
	priorityLog  []pipeline.Priority
	cancelled    bool
	onProgress   func(pipeline.ProgressUpdate)
	onCompletion func(image.Image, error)
}

// Request returns the request this load was started with.
func (t *FakeTask) Request() pipeline.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.request
}

// Cancel implements [pipeline.Task]. It only records the cancellation;
// callbacks can still be fired afterwards by the test.
func (t *FakeTask) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

// Cancelled reports whether Cancel was called.
func (t *FakeTask) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Priority implements [pipeline.Task].
func (t *FakeTask) Priority() pipeline.Priority {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priority
}

// SetPriority implements [pipeline.Task] and records the change.
func (t *FakeTask) SetPriority(priority pipeline.Priority) {
	t.mu.Lock()
	t.priority = priority
	t.priorityLog = append(t.priorityLog, priority)
	t.mu.Unlock()
}

// PriorityChanges returns every priority set on the task, in order.
func (t *FakeTask) PriorityChanges() []pipeline.Priority {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]pipeline.Priority(nil), t.priorityLog...)
}

// SendProgress fires the progress callback with the given byte counts and
// optional partially decoded image.
func (t *FakeTask) SendProgress(completed, total int64, partial image.Image) {
	t.mu.Lock()
	fn := t.onProgress
	t.mu.Unlock()
	if fn != nil {
		fn(pipeline.ProgressUpdate{Completed: completed, Total: total, Partial: partial})
	}
}

// Succeed fires the completion callback with a decoded image.
func (t *FakeTask) Succeed(img image.Image) {
	t.mu.Lock()
	fn := t.onCompletion
	t.mu.Unlock()
	if fn != nil {
		fn(img, nil)
	}
}

// Fail fires the completion callback with an error.
func (t *FakeTask) Fail(err error) {
	t.mu.Lock()
	fn := t.onCompletion
	t.mu.Unlock()
	if fn != nil {
		fn(nil, err)
	}
}
