// Package preflight provides readiness checks for the filesystem paths and
// delivery channels that Beacon depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll at startup and logs any failures before
//     accepting notifications, so misconfiguration surfaces immediately.
//   - The CLI "beacon status" command uses the same checks to display
//     delivery health alongside daemon state.
//
// Each check is gated by its config toggle -- disabled channels are skipped.
package preflight
