package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

func TestNewBreed(t *testing.T) {
	breed, err := NewBreed("  Holland Lop ", nil)
	require.NoError(t, err)

	assert.Equal(t, "Holland Lop", breed.Name)
	assert.Equal(t, DefaultLifeStageThresholds(), breed.Thresholds)
	events := breed.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventBreedCreated, events[0].Type)

	_, err = NewBreed("   ", nil)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestBreedSetThresholds(t *testing.T) {
	breed, err := NewBreed("Holland Lop", nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		thresholds LifeStageThresholds
		wantErr    bool
	}{
		{"valid", LifeStageThresholds{AdultAfterYears: 1, PrimeAfterYears: 4, SeniorAfterYears: 8}, false},
		{"zero adult boundary", LifeStageThresholds{AdultAfterYears: 0, PrimeAfterYears: 3, SeniorAfterYears: 7}, true},
		{"prime not above adult", LifeStageThresholds{AdultAfterYears: 3, PrimeAfterYears: 3, SeniorAfterYears: 7}, true},
		{"senior not above prime", LifeStageThresholds{AdultAfterYears: 1, PrimeAfterYears: 5, SeniorAfterYears: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := breed.SetThresholds(tt.thresholds)
			if tt.wantErr {
				assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.thresholds, breed.Thresholds)
		})
	}
}

func TestBreedPictures(t *testing.T) {
	breed, err := NewBreed("Holland Lop", nil)
	require.NoError(t, err)

	pic := NewPicture("https://cdn.example.com/lop.jpg", PictureKindAvatar)
	require.NoError(t, breed.AddPicture(pic))
	require.Len(t, breed.Pictures, 1)

	err = breed.RemovePicture("missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	require.NoError(t, breed.RemovePicture(pic.ID))
	assert.Empty(t, breed.Pictures)
}

func TestBreedDeleteBlocksMutation(t *testing.T) {
	breed, err := NewBreed("Holland Lop", nil)
	require.NoError(t, err)

	breed.Delete()
	breed.Delete()

	err = breed.Update("Mini Lop", nil)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	events := breed.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventBreedCreated, events[0].Type)
	assert.Equal(t, EventBreedDeleted, events[1].Type)
}

func TestNewGene(t *testing.T) {
	gene, err := NewGene("Agouti", InheritanceDominant, GeneCategoryColor)
	require.NoError(t, err)

	assert.Equal(t, "Agouti", gene.Name)
	assert.Equal(t, InheritanceDominant, gene.InheritanceType)
	events := gene.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventGeneCreated, events[0].Type)

	_, err = NewGene("   ", InheritanceDominant, GeneCategoryColor)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestGeneDefaultsAndUpdate(t *testing.T) {
	gene, err := NewGene("Agouti", "", "")
	require.NoError(t, err)

	assert.Equal(t, InheritanceOther, gene.InheritanceType)
	assert.Equal(t, GeneCategoryOther, gene.Category)

	notation := "A/a"
	require.NoError(t, gene.Update("Agouti", nil, nil, &notation, InheritanceRecessive, GeneCategoryPattern))
	assert.Equal(t, InheritanceRecessive, gene.InheritanceType)
	assert.Equal(t, GeneCategoryPattern, gene.Category)
	require.NotNil(t, gene.Notation)
	assert.Equal(t, "A/a", *gene.Notation)

	err = gene.Update("", nil, nil, nil, "", "")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestMorphologyGeneMappings(t *testing.T) {
	morph, err := NewMorphology("Albino", nil)
	require.NoError(t, err)

	require.NoError(t, morph.AddGeneMapping(NewMorphGeneMapping("gene-c", ZygosityHomozygous, true)))

	err = morph.AddGeneMapping(NewMorphGeneMapping("gene-c", ZygosityHeterozygous, false))
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	assert.True(t, morph.RequiresGene("gene-c"))
	assert.False(t, morph.RequiresGene("gene-d"))

	err = morph.RemoveGeneMapping("gene-d")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	require.NoError(t, morph.RemoveGeneMapping("gene-c"))
	assert.Empty(t, morph.GeneMappings)
}

func TestMorphologyCompatibleWith(t *testing.T) {
	morph, err := NewMorphology("Albino", nil)
	require.NoError(t, err)
	require.NoError(t, morph.AddGeneMapping(NewMorphGeneMapping("gene-c", ZygosityHomozygous, true)))
	require.NoError(t, morph.AddGeneMapping(NewMorphGeneMapping("gene-e", ZygosityHeterozygous, false)))

	tests := []struct {
		name       string
		mappings   []MorphGeneMapping
		compatible bool
	}{
		{"has required gene", []MorphGeneMapping{NewMorphGeneMapping("gene-c", ZygosityHomozygous, false)}, true},
		{"missing required gene", []MorphGeneMapping{NewMorphGeneMapping("gene-e", ZygosityHeterozygous, false)}, false},
		{"no mappings at all", nil, false},
		{"extra genes do not matter", []MorphGeneMapping{
			NewMorphGeneMapping("gene-c", ZygosityHeterozygous, false),
			NewMorphGeneMapping("gene-z", ZygosityUnknown, false),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.compatible, morph.CompatibleWith(tt.mappings))
		})
	}
}

func TestMorphologyWithoutRequirementsAcceptsAnyPet(t *testing.T) {
	morph, err := NewMorphology("Wildtype", nil)
	require.NoError(t, err)
	require.NoError(t, morph.AddGeneMapping(NewMorphGeneMapping("gene-a", ZygosityUnknown, false)))

	assert.True(t, morph.CompatibleWith(nil))
}
