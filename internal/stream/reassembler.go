package stream

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/keepsake-labs/chatvault/internal/logger"
)

const (
	// dataPrefix introduces an SSE data line.
	dataPrefix = "data: "

	// pollInterval is how often WaitForCompletion re-checks the buffer.
	pollInterval = 500 * time.Millisecond
)

// defaultMarkers apply to sources without a registered marker set.
var defaultMarkers = []string{"data: [DONE]"}

// Chunk is a single parsed SSE chunk.
type Chunk struct {
	Timestamp time.Time
	Data      map[string]any
	Raw       string
}

// Extractor reconstructs the final message text from buffered chunks.
// It reports false when the chunks do not contain a usable message.
type Extractor func(chunks []Chunk) (string, bool)

// convBuffer holds the chunks captured for one conversation.
type convBuffer struct {
	mu     sync.Mutex
	chunks []Chunk
}

// Reassembler accumulates streaming chunks per conversation and
// reconstructs complete messages once a stream has finished.
// All methods are safe for concurrent use.
type Reassembler struct {
	mu         sync.RWMutex
	buffers    map[string]*convBuffer
	markers    map[string][]string
	extractors map[string]Extractor
}

// NewReassembler creates a Reassembler with the built-in source strategies
// registered.
func NewReassembler() *Reassembler {
	r := &Reassembler{
		buffers:    make(map[string]*convBuffer),
		markers:    make(map[string][]string),
		extractors: make(map[string]Extractor),
	}

	r.RegisterSource("chatgpt", []string{"data: [DONE]", "[DONE]"}, TakeLastParts)
	r.RegisterSource("claude", []string{"event: message_stop", "data: [DONE]"}, DeltaText)
	// Marker sets for gemini and perplexity are provisional until their
	// stream formats are confirmed.
	r.RegisterSource("gemini", []string{"data: [DONE]"}, PlainText)
	r.RegisterSource("perplexity", []string{"data: [DONE]"}, PlainText)

	return r
}

// RegisterSource installs or replaces the completion markers and extraction
// strategy for a source.
func (r *Reassembler) RegisterSource(source string, markers []string, extract Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[source] = markers
	r.extractors[source] = extract
}

// AddChunk appends a raw SSE chunk to a conversation's buffer. Completion
// markers and non-JSON lines (heartbeats, comments) are recognised and
// dropped without error.
func (r *Reassembler) AddChunk(conversationID, chunk, source string) {
	if !strings.HasPrefix(chunk, dataPrefix) || r.IsCompletionMarker(chunk, source) {
		return
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(chunk[len(dataPrefix):]), &data); err != nil {
		// Some chunks are not JSON (e.g. heartbeats).
		return
	}

	buf := r.buffer(conversationID, true)
	buf.mu.Lock()
	buf.chunks = append(buf.chunks, Chunk{
		Timestamp: time.Now(),
		Data:      data,
		Raw:       chunk,
	})
	buf.mu.Unlock()
}

// IsCompletionMarker reports whether a raw chunk signals the end of a
// stream for the given source.
func (r *Reassembler) IsCompletionMarker(chunk, source string) bool {
	r.mu.RLock()
	markers, ok := r.markers[source]
	r.mu.RUnlock()
	if !ok {
		markers = defaultMarkers
	}
	for _, marker := range markers {
		if strings.Contains(chunk, marker) {
			return true
		}
	}
	return false
}

// GetCompleteMessage reconstructs the full message for a conversation using
// the source's extraction strategy. On success the buffer is consumed; on
// failure it is retained so a later attempt can still succeed.
func (r *Reassembler) GetCompleteMessage(conversationID, source string) (string, bool) {
	buf := r.buffer(conversationID, false)
	if buf == nil {
		return "", false
	}

	buf.mu.Lock()
	chunks := make([]Chunk, len(buf.chunks))
	copy(chunks, buf.chunks)
	buf.mu.Unlock()

	r.mu.RLock()
	extract, ok := r.extractors[source]
	r.mu.RUnlock()
	if !ok {
		extract = PlainText
	}

	msg, found := extract(chunks)
	if !found {
		logger.Debug("No complete message for %q (source %q, %d chunks)", conversationID, source, len(chunks))
		return "", false
	}

	r.ClearBuffer(conversationID)
	return msg, true
}

// WaitForCompletion blocks until the conversation's stream ends with a
// completion marker, the timeout elapses, or the context is cancelled.
// Returns false immediately if no chunks have been received.
func (r *Reassembler) WaitForCompletion(ctx context.Context, conversationID, source string, timeout time.Duration) bool {
	if r.buffer(conversationID, false) == nil {
		return false // No chunks received yet
	}

	if r.lastChunkIsMarker(conversationID, source) {
		return true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-ticker.C:
			if r.lastChunkIsMarker(conversationID, source) {
				return true
			}
		}
	}
}

// lastChunkIsMarker checks whether the newest buffered chunk is a
// completion marker under the given source's marker set. This can only
// hold when the chunk was buffered for a source with a different marker
// set, which is exactly the cross-capture case the check exists for.
func (r *Reassembler) lastChunkIsMarker(conversationID, source string) bool {
	buf := r.buffer(conversationID, false)
	if buf == nil {
		return false
	}

	buf.mu.Lock()
	defer buf.mu.Unlock()
	if len(buf.chunks) == 0 {
		return false
	}
	return r.IsCompletionMarker(buf.chunks[len(buf.chunks)-1].Raw, source)
}

// Buffered returns the number of chunks currently held for a conversation.
func (r *Reassembler) Buffered(conversationID string) int {
	buf := r.buffer(conversationID, false)
	if buf == nil {
		return 0
	}
	buf.mu.Lock()
	defer buf.mu.Unlock()
	return len(buf.chunks)
}

// ClearBuffer discards all chunks for a conversation.
func (r *Reassembler) ClearBuffer(conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buffers, conversationID)
}

// ClearAll discards every buffer.
func (r *Reassembler) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffers = make(map[string]*convBuffer)
}

// buffer returns the buffer for a conversation, creating it when create
// is set.
func (r *Reassembler) buffer(conversationID string, create bool) *convBuffer {
	r.mu.RLock()
	buf := r.buffers[conversationID]
	r.mu.RUnlock()
	if buf != nil || !create {
		return buf
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if buf = r.buffers[conversationID]; buf == nil {
		buf = &convBuffer{}
		r.buffers[conversationID] = buf
	}
	return buf
}
