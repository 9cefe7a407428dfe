// sender.go
package main

import (
	"context"
)

// Messenger rejects text messages over 2000 characters.
const messageChunkLimit = 2000

// MessageSender is the single-message network capability the chunked
// sender is built on. GraphSender is the real implementation.
type MessageSender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// ChunkResult records the outcome of one chunk send.
type ChunkResult struct {
	Index int
	Err   error
}

// splitMessage splits text into ordered chunks of at most limit runes.
// Splitting happens on hard character boundaries; concatenating the
// chunks restores the original text.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// sendChunked delivers text to one recipient strictly in order, one
// network call per chunk. A failed chunk is logged and reported but does
// not retry and does not stop later chunks; partial delivery is accepted.
// Empty text sends nothing.
func sendChunked(ctx context.Context, sender MessageSender, recipientID, text string, limit int) []ChunkResult {
	chunks := splitMessage(text, limit)

	results := make([]ChunkResult, 0, len(chunks))
	for i, chunk := range chunks {
		err := sender.SendMessage(ctx, recipientID, chunk)
		if err != nil {
			LogError("chunk %d/%d to %s failed: %v", i+1, len(chunks), recipientID, err)
		}
		results = append(results, ChunkResult{Index: i, Err: err})
	}
	return results
}
