package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
)

// ThresholdsPayload carries breed life-stage boundaries.
type ThresholdsPayload struct {
	AdultAfterYears  int `json:"adult_after_years"`
	PrimeAfterYears  int `json:"prime_after_years"`
	SeniorAfterYears int `json:"senior_after_years"`
}

// BreedRequest payload for create and update.
type BreedRequest struct {
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Thresholds  *ThresholdsPayload `json:"thresholds"`
}

// BreedResponse response.
type BreedResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Thresholds  ThresholdsPayload `json:"thresholds"`
	Pictures    []PictureResponse `json:"pictures"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GeneRequest payload for create and update.
type GeneRequest struct {
	Name            string                 `json:"name"`
	Alias           *string                `json:"alias"`
	Description     *string                `json:"description"`
	Notation        *string                `json:"notation"`
	InheritanceType domain.InheritanceType `json:"inheritance_type"`
	Category        domain.GeneCategory    `json:"category"`
}

// GeneResponse response.
type GeneResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Alias           *string                `json:"alias,omitempty"`
	Description     *string                `json:"description,omitempty"`
	Notation        *string                `json:"notation,omitempty"`
	InheritanceType domain.InheritanceType `json:"inheritance_type"`
	Category        domain.GeneCategory    `json:"category"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MorphologyRequest payload for create and update.
type MorphologyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// MorphologyResponse response.
type MorphologyResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  *string               `json:"description,omitempty"`
	GeneMappings []GeneMappingResponse `json:"gene_mappings"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}
