/*
Package rstore provides an optional, opt-in snapshot store: a place to
persist Model snapshots for later inspection or replay, independent of the
Runtime's own in-memory lifecycle.

This is deliberately not part of the core runtime. A Runtime never
persists anything on its own; a host wires BoltSnapshotStore in as a
Resource only if it wants snapshots durable across process restarts, and
only ever calls it from its own Effect or event-handler bodies — the
Runtime's dispatch and drain semantics are unaffected by whether a
snapshot store is present.

# Architecture

	┌──────────────── SNAPSHOT STORE (optional) ─────────────────┐
	│                                                               │
	│   runtime.Resource[*rstore.BoltSnapshotStore](rt)            │
	│              │                                                │
	│              ▼                                                │
	│   ┌─────────────────────────────────────────┐               │
	│   │  bbolt single-file DB, one bucket:        │               │
	│   │  "snapshots" — key is a caller-chosen or  │               │
	│   │  uuid-generated string, value is JSON     │               │
	│   └─────────────────────────────────────────┘               │
	└───────────────────────────────────────────────────────────────┘
*/
package rstore
