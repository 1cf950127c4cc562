// Package notify defines the leveled notification contract: the closed level
// enumeration, per-level presentation defaults, and the Notifier facade that
// resolves caller input into an effective record and forwards it to a display
// surface.
//
// The Notifier holds no notification state. Storage, uid assignment, and
// auto-dismiss timers belong to the Surface implementation (internal/center
// in the daemon). Callers address a shown notification only through the
// opaque uid the surface returns.
package notify
