// Package logging builds the slog loggers used across beacon and carries the
// shared attribute helpers and field key conventions.
//
// Two handler formats exist: a pretty console handler for interactive use and
// a JSON handler for log files. Both honor a shared level var so verbosity is
// a construction-time choice.
package logging
