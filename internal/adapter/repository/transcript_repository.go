package repository

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
)

// TranscriptRepository handles transcript chunks over HTTP
type TranscriptRepository struct {
	api API
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(api API) *TranscriptRepository {
	return &TranscriptRepository{api: api}
}

var _ repositories.TranscriptRepository = (*TranscriptRepository)(nil)

// ListChunks retrieves the transcript of a meeting in speaking order
func (r *TranscriptRepository) ListChunks(ctx context.Context, meetingID string) ([]entities.TranscriptChunk, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	var resp common.ListResponse[entities.TranscriptChunk]
	if err := r.api.Get(ctx, path("/transcripts/meeting/%s/chunks", meetingID), nil, &resp); err != nil {
		return nil, err
	}
	entities.SortChunks(resp.Items)
	return resp.Items, nil
}

// Ingest appends chunks through the manual ingest endpoint
func (r *TranscriptRepository) Ingest(ctx context.Context, meetingID string, req meeting.IngestTranscriptRequest) ([]entities.TranscriptChunk, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var resp common.ListResponse[entities.TranscriptChunk]
	if err := r.api.Post(ctx, path("/transcripts/%s/chunks", meetingID), req, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
