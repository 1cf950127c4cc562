// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management, request/response DTOs, and conversions
// between stored notification records and wire representations. The server
// embeds the daemon; the client offers one method per RPC so commands stay
// small.
package ipc
