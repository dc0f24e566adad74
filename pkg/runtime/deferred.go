package runtime

// Deferred wraps a closure intended to run on scope exit. Go has no
// destructors, so the caller supplies the scope itself by deferring Run at
// the call site:
//
//	d := Defer(cleanup)
//	defer d.Run()
//	...
//	if somethingWentWrong {
//		d.Abort() // skip cleanup; some other path already handled it
//	}
//
// This is the cleanup-discipline primitive effects and tasks use in place
// of try/finally: Run fires exactly once, on whichever exit path reaches
// it first, and Abort consumes the closure so a later Run is a no-op.
type Deferred struct {
	f *func()
}

// Defer wraps f as a Deferred. The caller is responsible for running it,
// typically via `defer d.Run()` immediately after construction.
func Defer(f func()) Deferred {
	return Deferred{f: &f}
}

// Run invokes the wrapped closure unless it was already run or aborted.
// Safe to call more than once; only the first call has effect.
func (d Deferred) Run() {
	if d.f == nil || *d.f == nil {
		return
	}
	fn := *d.f
	*d.f = nil
	fn()
}

// Abort discards the wrapped closure so a later Run is a no-op.
func (d Deferred) Abort() {
	if d.f == nil {
		return
	}
	*d.f = nil
}
