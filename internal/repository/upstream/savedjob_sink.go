package upstream

import (
	"context"
	"encoding/json"
)

// SavedJobSink implements domain.SavedJobSink against GET /users/saved and
// POST /users/save/{jobId}. Both endpoints require a bearer credential.
type SavedJobSink struct {
	client *Client
}

func NewSavedJobSink(client *Client) *SavedJobSink {
	return &SavedJobSink{client: client}
}

func (s *SavedJobSink) ListSaved(ctx context.Context, token string) ([]string, error) {
	var raw []json.RawMessage
	if err := s.client.doJSON(ctx, "GET", "/users/saved", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeIDList(raw)
}

func (s *SavedJobSink) ToggleSaved(ctx context.Context, token string, jobID string) ([]string, error) {
	var raw []json.RawMessage
	if err := s.client.doJSON(ctx, "POST", "/users/save/"+jobID, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeIDList(raw)
}

// decodeIDList accepts both shapes the upstream returns: plain id strings
// (toggle) and populated job records (list).
func decodeIDList(raw []json.RawMessage) ([]string, error) {
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}

		var record struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
		}
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, err
		}
		if record.MongoID != "" {
			ids = append(ids, record.MongoID)
		} else if record.ID != "" {
			ids = append(ids, record.ID)
		}
	}
	return ids, nil
}
