// Package transport defines the handler contracts between the HTTP layer
// and the gateway core, plus transport-level middleware (panic recovery,
// request ID propagation, structured request logging). The HTTP binding
// itself lives in the transport/http subpackage.
package transport
