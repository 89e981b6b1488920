// Package models holds the request/response shapes of the commit API.
package models

import "taproom/internal/record"

// SubmitRequest is the body of POST /api/commits.
type SubmitRequest struct {
	Message string `json:"message"`
	Alias   string `json:"alias,omitempty"`
	Beer    string `json:"beer,omitempty"`
}

// SubmitResponse echoes the accepted record back to the visitor.
type SubmitResponse struct {
	Hash      string `json:"hash"`
	Message   string `json:"message"`
	Alias     string `json:"alias"`
	Tap       string `json:"tap"`
	Caption   string `json:"caption"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
}

// NewSubmitResponse builds the response view of a freshly created record.
func NewSubmitResponse(rec record.Record) SubmitResponse {
	return SubmitResponse{
		Hash:      rec.Hash,
		Message:   rec.Message,
		Alias:     rec.Alias,
		Tap:       string(rec.Tap),
		Caption:   rec.Tap.Caption(),
		CreatedAt: rec.CreatedAt,
		Status:    string(rec.Status),
	}
}

// ApproveRequest is the body of POST /api/commits/approve.
type ApproveRequest struct {
	Hash   string `json:"hash"`
	Secret string `json:"secret"`
}

// ApproveResponse confirms a pending → approved transition.
type ApproveResponse struct {
	Success bool   `json:"success"`
	Hash    string `json:"hash"`
}

// RecordView is one listing entry of GET /api/commits.
type RecordView struct {
	Hash      string `json:"hash"`
	Tap       string `json:"tap"`
	Alias     string `json:"alias"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
}

// NewRecordViews maps decoded records to their listing shape, keeping order.
func NewRecordViews(recs []record.Record) []RecordView {
	views := make([]RecordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, RecordView{
			Hash:      rec.Hash,
			Tap:       string(rec.Tap),
			Alias:     rec.Alias,
			Message:   rec.Message,
			CreatedAt: rec.CreatedAt,
			Status:    string(rec.Status),
		})
	}
	return views
}
