// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management, request/response DTOs, and the
// boundary error codes carried back to clients. net/rpc flattens server
// errors into strings, so codes travel as message prefixes and are recovered
// with ErrorCode on the client side.
package ipc
