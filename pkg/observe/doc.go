// Package observe provides the reactive value primitives that controllers
// publish their state through.
//
// An [Observable] holds a single value and notifies registered listeners
// synchronously whenever the value is set. A [Notifier] broadcasts valueless
// change events. Both return an unsubscribe function from AddListener, so
// subscriptions can be cleaned up when the owning widget or view goes away:
//
//	unsub := controller.Image.AddListener(func(img image.Image) {
//	    redraw()
//	})
//	defer unsub()
//
// Observables are safe for concurrent use and can be shared across
// goroutines. Listeners run synchronously on the goroutine that called Set,
// so UI-bound listeners should only be driven from the owning context.
package observe
