// Package server is the transport in front of the chat hub.
//
// The implementation is organized into specialized files for configuration,
// the WebSocket session adapter, origin and rate-limit policies, routing, and
// HTTP handlers.
package server
