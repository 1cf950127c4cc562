// Package daemon coordinates the notification center runtime: single-instance
// locking, the expiry sweep, the optional udev device monitor, and the
// operations the IPC layer exposes to CLI clients.
package daemon
