// Package model defines the contract a runtime-owned application state type
// must satisfy.
//
// A Model is the single piece of mutable state a Runtime owns. It is never
// shared directly: every other goroutine that needs to observe it gets a
// Snapshot instead, produced on demand by the Runtime goroutine.
package model

// Model is the user-supplied aggregate representing application state. M
// names its own snapshot type: an immutable, independently shareable copy
// safe to hand to read-only consumers on other goroutines.
//
// For plain value types, Snapshot is usually just "return a copy of
// myself" (M implements Model[M]). For models holding pointers, slices, or
// maps, Snapshot must deep-copy whatever must stay independent of
// subsequent mutation; the interface doesn't require the snapshot type to
// equal the model type, only that one can be produced.
type Model[M any] interface {
	Snapshot() M
}
