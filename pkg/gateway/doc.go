// Package gateway implements the core translation between the Responses
// API surface and a black-box graph runner. The Gateway type implements
// transport.ResponseCreator: it normalizes request input to a single user
// utterance, merges stored conversation context, invokes the runner in
// single-shot or streaming mode, and shapes the result into a response
// envelope or an ordered SSE event sequence. Content extraction is
// deliberately permissive because the runner's snapshot shape is not
// controlled by this system.
package gateway
