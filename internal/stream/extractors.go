package stream

import "strings"

// TakeLastParts handles sources that resend the whole message on every
// chunk ({"message": {"content": {"parts": [...]}}}). The newest chunk
// carrying non-empty parts wins.
func TakeLastParts(chunks []Chunk) (string, bool) {
	for i := len(chunks) - 1; i >= 0; i-- {
		parts := partsList(chunks[i].Data)
		if len(parts) == 0 {
			continue
		}
		var b strings.Builder
		for _, p := range parts {
			s, ok := p.(string)
			if !ok {
				continue
			}
			b.WriteString(s)
		}
		return b.String(), true
	}
	return "", false
}

// DeltaText handles incremental delta streams
// ({"type": "content_block_delta", "delta": {"text": "..."}}).
// Deltas are concatenated in arrival order.
func DeltaText(chunks []Chunk) (string, bool) {
	var b strings.Builder
	found := false
	for _, c := range chunks {
		if c.Data["type"] != "content_block_delta" {
			continue
		}
		delta, ok := c.Data["delta"].(map[string]any)
		if !ok {
			continue
		}
		text, ok := delta["text"].(string)
		if !ok {
			continue
		}
		b.WriteString(text)
		found = true
	}
	return b.String(), found
}

// PlainText concatenates top-level "text" fields. Used as the generic
// fallback for sources without a confirmed stream format.
func PlainText(chunks []Chunk) (string, bool) {
	var b strings.Builder
	found := false
	for _, c := range chunks {
		text, ok := c.Data["text"].(string)
		if !ok {
			continue
		}
		b.WriteString(text)
		found = true
	}
	return b.String(), found
}

// partsList navigates message.content.parts in a chunk's data.
func partsList(data map[string]any) []any {
	message, ok := data["message"].(map[string]any)
	if !ok {
		return nil
	}
	content, ok := message["content"].(map[string]any)
	if !ok {
		return nil
	}
	parts, ok := content["parts"].([]any)
	if !ok {
		return nil
	}
	return parts
}
