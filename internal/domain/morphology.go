package domain

import (
	"strings"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Morphology is reference data describing a visual form expressed by a
// combination of genes. Its gene mappings share the uniqueness rule with
// Pet: one mapping per gene id.
type Morphology struct {
	AggregateRoot

	Name         string             `json:"name"`
	Description  *string            `json:"description,omitempty"`
	GeneMappings []MorphGeneMapping `json:"gene_mappings"`
	Pictures     []Picture          `json:"pictures"`
}

// NewMorphology constructs a morphology.
func NewMorphology(name string, description *string) (*Morphology, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("morphology name required", nil)
	}
	morph := &Morphology{
		AggregateRoot: newAggregateRoot(),
		Name:          name,
		Description:   description,
	}
	morph.record(EventMorphologyCreated, CatalogEntryPayload{Name: name})
	return morph, nil
}

// Update replaces name and description.
func (m *Morphology) Update(name string, description *string) error {
	if err := m.ensureMutable("morphology"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("morphology name required", nil)
	}
	m.Name = name
	m.Description = description
	m.touch()
	m.record(EventMorphologyUpdated, CatalogEntryPayload{Name: name})
	return nil
}

// AddGeneMapping appends a mapping, one per gene id.
func (m *Morphology) AddGeneMapping(mapping MorphGeneMapping) error {
	if err := m.ensureMutable("morphology"); err != nil {
		return err
	}
	if findGeneMapping(m.GeneMappings, mapping.GeneID) >= 0 {
		return apperrors.NewConflict("gene already mapped", map[string]any{"gene_id": mapping.GeneID})
	}
	m.GeneMappings = append(m.GeneMappings, mapping)
	m.touch()
	return nil
}

// RemoveGeneMapping deletes the mapping for the given gene id.
func (m *Morphology) RemoveGeneMapping(geneID string) error {
	if err := m.ensureMutable("morphology"); err != nil {
		return err
	}
	idx := findGeneMapping(m.GeneMappings, geneID)
	if idx < 0 {
		return apperrors.NewNotFound("gene mapping", map[string]any{"gene_id": geneID})
	}
	m.GeneMappings = append(m.GeneMappings[:idx], m.GeneMappings[idx+1:]...)
	m.touch()
	return nil
}

// RequiresGene reports whether the morphology requires the given gene.
func (m *Morphology) RequiresGene(geneID string) bool {
	idx := findGeneMapping(m.GeneMappings, geneID)
	return idx >= 0 && m.GeneMappings[idx].IsRequired
}

// CompatibleWith reports whether a pet carrying the given mappings can
// express this morphology: every required gene must be present.
func (m *Morphology) CompatibleWith(petMappings []MorphGeneMapping) bool {
	for _, mapping := range m.GeneMappings {
		if !mapping.IsRequired {
			continue
		}
		if findGeneMapping(petMappings, mapping.GeneID) < 0 {
			return false
		}
	}
	return true
}

// Delete soft-deletes the morphology and records the event.
func (m *Morphology) Delete() {
	if m.IsDeleted {
		return
	}
	m.MarkDeleted()
	m.record(EventMorphologyDeleted, CatalogEntryPayload{Name: m.Name})
}
