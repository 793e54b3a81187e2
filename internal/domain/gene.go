package domain

import (
	"strings"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Gene is reference data describing a heritable trait.
type Gene struct {
	AggregateRoot

	Name            string          `json:"name"`
	Alias           *string         `json:"alias,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Notation        *string         `json:"notation,omitempty"`
	InheritanceType InheritanceType `json:"inheritance_type"`
	Category        GeneCategory    `json:"category"`
	Pictures        []Picture       `json:"pictures"`
}

// NewGene constructs a gene.
func NewGene(name string, inheritanceType InheritanceType, category GeneCategory) (*Gene, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("gene name required", nil)
	}
	if inheritanceType == "" {
		inheritanceType = InheritanceOther
	}
	if category == "" {
		category = GeneCategoryOther
	}
	gene := &Gene{
		AggregateRoot:   newAggregateRoot(),
		Name:            name,
		InheritanceType: inheritanceType,
		Category:        category,
	}
	gene.record(EventGeneCreated, CatalogEntryPayload{Name: name})
	return gene, nil
}

// Update replaces the descriptive fields.
func (g *Gene) Update(name string, alias, description, notation *string, inheritanceType InheritanceType, category GeneCategory) error {
	if err := g.ensureMutable("gene"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("gene name required", nil)
	}
	g.Name = name
	g.Alias = alias
	g.Description = description
	g.Notation = notation
	if inheritanceType != "" {
		g.InheritanceType = inheritanceType
	}
	if category != "" {
		g.Category = category
	}
	g.touch()
	g.record(EventGeneUpdated, CatalogEntryPayload{Name: name})
	return nil
}

// Delete soft-deletes the gene and records the event.
func (g *Gene) Delete() {
	if g.IsDeleted {
		return
	}
	g.MarkDeleted()
	g.record(EventGeneDeleted, CatalogEntryPayload{Name: g.Name})
}
