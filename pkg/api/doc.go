// Package api defines the wire types of the Responses API surface exposed
// by graphgate: the create-response request with its input unions, the
// response envelope, streaming event types, the error taxonomy, and ID
// generation. Types in this package mirror the JSON wire format exactly;
// translation to and from the graph runner contract lives in pkg/gateway.
package api
