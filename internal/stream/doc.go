// Package stream reassembles complete assistant messages from captured
// SSE streaming responses.
//
// Chat services deliver responses as a stream of "data: " chunks. The
// Reassembler buffers chunks per conversation, recognises each service's
// completion markers, and extracts the final message text with a
// per-source strategy. Sources not registered fall back to a generic
// extractor.
package stream
