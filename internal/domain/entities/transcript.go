package entities

import "sort"

// TranscriptChunk is one diarized segment of a meeting transcript
type TranscriptChunk struct {
	ID         string   `json:"id"`
	MeetingID  string   `json:"meeting_id,omitempty"`
	ChunkIndex int      `json:"chunk_index"`
	Speaker    string   `json:"speaker"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Duration returns the chunk length in seconds
func (c *TranscriptChunk) Duration() float64 {
	if c.EndTime < c.StartTime {
		return 0
	}
	return c.EndTime - c.StartTime
}

// SortChunks orders chunks by start time, then by chunk index
func SortChunks(chunks []TranscriptChunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].StartTime != chunks[j].StartTime {
			return chunks[i].StartTime < chunks[j].StartTime
		}
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
}

// Speakers returns the distinct speakers in order of first appearance
func Speakers(chunks []TranscriptChunk) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range chunks {
		if _, ok := seen[c.Speaker]; ok || c.Speaker == "" {
			continue
		}
		seen[c.Speaker] = struct{}{}
		out = append(out, c.Speaker)
	}
	return out
}
