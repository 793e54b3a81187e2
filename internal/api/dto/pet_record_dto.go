package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
)

// PetRecordRequest payload for creating a care record. Updates reuse the
// same shape; the record type of an existing record is immutable and
// ignored there.
type PetRecordRequest struct {
	RecordType domain.RecordType `json:"record_type"`
	Data       map[string]any    `json:"data"`
	Notes      *string           `json:"notes"`
}

// PetRecordResponse payload.
type PetRecordResponse struct {
	ID         string            `json:"id"`
	PetID      string            `json:"pet_id"`
	CreatorID  string            `json:"creator_id"`
	RecordType domain.RecordType `json:"record_type"`
	Data       map[string]any    `json:"data"`
	Notes      *string           `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
