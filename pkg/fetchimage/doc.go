// Package fetchimage provides an observable controller that fetches a
// remote image through an external pipeline and publishes its state to a
// declarative UI layer.
//
// A [Controller] is bound 1:1 to a UI element's lifecycle. It exposes four
// observable fields (Image, Error, IsLoading, Progress), a settable
// priority, and a small set of methods: Fetch, Cancel, Reset, Dispose. The
// actual network transport, decoding, and caching are delegated to a
// [pipeline.Pipeline]; the controller only orchestrates when to call it and
// how to interpret results.
//
// # Threading
//
// All controller methods must be called from the single context that owns
// the controller, typically the UI event loop. The controller uses no
// internal locks; correctness relies on this cooperative model. Pipeline
// callbacks are marshaled back onto the owning context through the dispatch
// package (see [dispatch.Register]), or a per-controller dispatcher
// configured with [WithDispatcher].
//
// # Quality tracking
//
// The controller tracks whether the displayed image came from the regular
// request or the low-data fallback, and never replaces a regular-quality
// image with a lower-quality one. Once a regular image is loaded, further
// Fetch calls are no-ops until Reset.
package fetchimage
