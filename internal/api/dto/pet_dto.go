package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
)

// CreatePetRequest payload.
type CreatePetRequest struct {
	Name         string               `json:"name"`
	Description  *string              `json:"description"`
	BreedID      string               `json:"breed_id"`
	Gender       domain.Gender        `json:"gender"`
	BirthDate    *time.Time           `json:"birth_date"`
	MorphologyID *string              `json:"morphology_id"`
	GeneMappings []GeneMappingRequest `json:"gene_mappings"`
}

// UpdatePetRequest payload for name and description.
type UpdatePetRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// TransferOwnershipRequest payload.
type TransferOwnershipRequest struct {
	NewOwnerID string `json:"new_owner_id"`
}

// SetBirthDateRequest payload.
type SetBirthDateRequest struct {
	BirthDate time.Time `json:"birth_date"`
}

// SetMorphologyRequest payload. A null morphology_id clears the reference.
type SetMorphologyRequest struct {
	MorphologyID *string `json:"morphology_id"`
}

// GeneMappingRequest payload.
type GeneMappingRequest struct {
	GeneID     string          `json:"gene_id"`
	Zygosity   domain.Zygosity `json:"zygosity"`
	IsRequired bool            `json:"is_required"`
}

// PictureRequest payload.
type PictureRequest struct {
	URL  string             `json:"url"`
	Kind domain.PictureKind `json:"kind"`
}

// GeneMappingResponse response.
type GeneMappingResponse struct {
	ID         string          `json:"id"`
	GeneID     string          `json:"gene_id"`
	Zygosity   domain.Zygosity `json:"zygosity"`
	IsRequired bool            `json:"is_required"`
}

// PictureResponse response.
type PictureResponse struct {
	ID   string             `json:"id"`
	URL  string             `json:"url"`
	Kind domain.PictureKind `json:"kind"`
}

// PetResponse is the full pet view.
type PetResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  *string               `json:"description,omitempty"`
	BirthDate    *time.Time            `json:"birth_date,omitempty"`
	OwnerID      string                `json:"owner_id"`
	BreedID      string                `json:"breed_id"`
	Gender       domain.Gender         `json:"gender"`
	MorphologyID *string               `json:"morphology_id,omitempty"`
	GeneMappings []GeneMappingResponse `json:"gene_mappings"`
	Pictures     []PictureResponse     `json:"pictures"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// EventResponse is an audit log entry.
type EventResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}
