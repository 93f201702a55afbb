// Package chat implements the broadcast core of the relay: a shared text
// history, the registry of connected clients and their outbound queues, the
// fan-out engine and the per-connection handler.
//
// The package never touches the network. Every accepted connection is handed
// to a Hub as a Session, which the transport layer implements.
package chat
