// Package sink delivers shown notifications to external targets: the desktop
// notification system via command-line tools and ntfy push topics over HTTP.
//
// Delivery is best effort. The notification center remains the authoritative
// record of what is shown; a failing sink is logged and never fails the show.
package sink
