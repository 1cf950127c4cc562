// Package center is the notification display surface behind the Notifier
// contract. It assigns uids at show time, persists notifications in SQLite,
// owns auto-dismiss timers (a one-second sweep expiring overdue records), and
// fans shown notifications out to delivery sinks.
//
// Manual dismissal and the sweep race by design; whichever transitions the
// record out of the active state first wins and the loser is a no-op.
package center
