package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReassemblerTakeLastParts(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("conv-1", `data: {"message": {"content": {"parts": ["Hello"]}}}`, "chatgpt")
	r.AddChunk("conv-1", `data: {"message": {"content": {"parts": ["Hello, world"]}}}`, "chatgpt")
	r.AddChunk("conv-1", `data: [DONE]`, "chatgpt")

	msg, ok := r.GetCompleteMessage("conv-1", "chatgpt")
	require.True(t, ok)
	assert.Equal(t, "Hello, world", msg)
}

func TestReassemblerSkipsChunksWithoutParts(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("conv-1", `data: {"message": {"content": {"parts": ["Complete answer"]}}}`, "chatgpt")
	// Later chunk without parts must not shadow the earlier complete one.
	r.AddChunk("conv-1", `data: {"message": {"status": "finished"}}`, "chatgpt")

	msg, ok := r.GetCompleteMessage("conv-1", "chatgpt")
	require.True(t, ok)
	assert.Equal(t, "Complete answer", msg)
}

func TestReassemblerDeltaText(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("conv-2", `data: {"type": "content_block_start"}`, "claude")
	r.AddChunk("conv-2", `data: {"type": "content_block_delta", "delta": {"text": "Hel"}}`, "claude")
	r.AddChunk("conv-2", `data: {"type": "content_block_delta", "delta": {"text": "lo"}}`, "claude")
	r.AddChunk("conv-2", `event: message_stop`, "claude")

	msg, ok := r.GetCompleteMessage("conv-2", "claude")
	require.True(t, ok)
	assert.Equal(t, "Hello", msg)
}

func TestReassemblerDropsMarkersAndHeartbeats(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("conv-3", `data: [DONE]`, "chatgpt")
	r.AddChunk("conv-3", `: heartbeat`, "chatgpt")
	r.AddChunk("conv-3", `data: not json at all`, "chatgpt")
	r.AddChunk("conv-3", `event: ping`, "chatgpt")

	assert.Equal(t, 0, r.Buffered("conv-3"))

	_, ok := r.GetCompleteMessage("conv-3", "chatgpt")
	assert.False(t, ok)
}

func TestReassemblerConsumesBufferOnSuccessOnly(t *testing.T) {
	r := NewReassembler()

	// No usable message yet: buffer survives the failed attempt.
	r.AddChunk("conv-4", `data: {"message": {"content": {"parts": []}}}`, "chatgpt")
	_, ok := r.GetCompleteMessage("conv-4", "chatgpt")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Buffered("conv-4"))

	// Once extraction succeeds the buffer is gone.
	r.AddChunk("conv-4", `data: {"message": {"content": {"parts": ["done"]}}}`, "chatgpt")
	msg, ok := r.GetCompleteMessage("conv-4", "chatgpt")
	require.True(t, ok)
	assert.Equal(t, "done", msg)
	assert.Equal(t, 0, r.Buffered("conv-4"))

	_, ok = r.GetCompleteMessage("conv-4", "chatgpt")
	assert.False(t, ok, "a second read must not replay the message")
}

func TestReassemblerUnknownSourceFallsBack(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("conv-5", `data: {"text": "generic "}`, "mystery")
	r.AddChunk("conv-5", `data: {"text": "stream"}`, "mystery")

	msg, ok := r.GetCompleteMessage("conv-5", "mystery")
	require.True(t, ok)
	assert.Equal(t, "generic stream", msg)
}

func TestReassemblerRegisterSource(t *testing.T) {
	r := NewReassembler()
	r.RegisterSource("custom", []string{"data: <END>"}, func(chunks []Chunk) (string, bool) {
		if len(chunks) == 0 {
			return "", false
		}
		return chunks[0].Raw, true
	})

	assert.True(t, r.IsCompletionMarker("data: <END>", "custom"))
	assert.False(t, r.IsCompletionMarker("data: [DONE]", "custom"))

	r.AddChunk("conv-6", `data: {"x": 1}`, "custom")
	msg, ok := r.GetCompleteMessage("conv-6", "custom")
	require.True(t, ok)
	assert.Equal(t, `data: {"x": 1}`, msg)
}

func TestIsCompletionMarkerPerSource(t *testing.T) {
	r := NewReassembler()

	assert.True(t, r.IsCompletionMarker("data: [DONE]", "chatgpt"))
	assert.True(t, r.IsCompletionMarker("[DONE]", "chatgpt"))
	assert.True(t, r.IsCompletionMarker("event: message_stop", "claude"))
	assert.False(t, r.IsCompletionMarker("event: message_stop", "chatgpt"))
	// Unregistered sources use the default marker set.
	assert.True(t, r.IsCompletionMarker("data: [DONE]", "mystery"))
	assert.False(t, r.IsCompletionMarker("event: message_stop", "mystery"))
}

func TestWaitForCompletionNoChunks(t *testing.T) {
	r := NewReassembler()

	start := time.Now()
	ok := r.WaitForCompletion(context.Background(), "nope", "chatgpt", 5*time.Second)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second, "must return immediately when nothing was buffered")
}

func TestWaitForCompletionTimeout(t *testing.T) {
	r := NewReassembler()
	r.AddChunk("conv-7", `data: {"text": "still going"}`, "gemini")

	ok := r.WaitForCompletion(context.Background(), "conv-7", "gemini", 50*time.Millisecond)
	assert.False(t, ok)
}

func TestWaitForCompletionContextCancel(t *testing.T) {
	r := NewReassembler()
	r.AddChunk("conv-8", `data: {"text": "still going"}`, "gemini")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := r.WaitForCompletion(ctx, "conv-8", "gemini", time.Minute)
	assert.False(t, ok)
}

func TestWaitForCompletionCrossMarkerSets(t *testing.T) {
	r := NewReassembler()

	// A claude stop event is not a chatgpt marker, so it gets buffered
	// under the chatgpt source...
	r.AddChunk("conv-9", `event: message_stop`, "chatgpt")
	assert.Equal(t, 0, r.Buffered("conv-9"), "non-data chunks are not buffered")

	// ...but a JSON data line buffered for one source can satisfy a
	// different source's marker check.
	r.AddChunk("conv-9", `data: {"note": "event: message_stop embedded"}`, "chatgpt")
	require.Equal(t, 1, r.Buffered("conv-9"))

	ok := r.WaitForCompletion(context.Background(), "conv-9", "claude", 2*time.Second)
	assert.True(t, ok, "marker check uses the waiting source's marker set")
}

func TestClearBufferAndClearAll(t *testing.T) {
	r := NewReassembler()

	r.AddChunk("a", `data: {"text": "x"}`, "gemini")
	r.AddChunk("b", `data: {"text": "y"}`, "gemini")

	r.ClearBuffer("a")
	assert.Equal(t, 0, r.Buffered("a"))
	assert.Equal(t, 1, r.Buffered("b"))

	r.ClearAll()
	assert.Equal(t, 0, r.Buffered("b"))
}
