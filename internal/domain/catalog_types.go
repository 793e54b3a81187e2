package domain

// Gender enumerates pet sexes.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Zygosity describes how a gene pair is expressed.
type Zygosity string

const (
	ZygosityHomozygous   Zygosity = "homozygous"
	ZygosityHeterozygous Zygosity = "heterozygous"
	ZygosityUnknown      Zygosity = "unknown"
)

// InheritanceType enumerates how a gene is inherited.
type InheritanceType string

const (
	InheritanceDominant           InheritanceType = "dominant"
	InheritanceRecessive          InheritanceType = "recessive"
	InheritanceXLinked            InheritanceType = "x_linked"
	InheritanceYLinked            InheritanceType = "y_linked"
	InheritanceAutosomalDominant  InheritanceType = "autosomal_dominant"
	InheritanceAutosomalRecessive InheritanceType = "autosomal_recessive"
	InheritanceOther              InheritanceType = "other"
)

// GeneCategory groups genes by the trait they influence.
type GeneCategory string

const (
	GeneCategoryColor   GeneCategory = "color"
	GeneCategoryPattern GeneCategory = "pattern"
	GeneCategoryTexture GeneCategory = "texture"
	GeneCategoryOther   GeneCategory = "other"
)

// PictureKind enumerates picture usage.
type PictureKind string

const (
	PictureKindAvatar  PictureKind = "avatar"
	PictureKindGallery PictureKind = "gallery"
)

// Picture belongs to the aggregate that holds it; stored in insertion
// order and removed by id.
type Picture struct {
	Entity

	URL  string      `json:"url"`
	Kind PictureKind `json:"kind"`
}

// NewPicture builds a picture entity.
func NewPicture(url string, kind PictureKind) Picture {
	if kind == "" {
		kind = PictureKindGallery
	}
	return Picture{Entity: newEntity(), URL: url, Kind: kind}
}

// MorphGeneMapping ties a gene to a pet or morphology. It is a plain
// entity: created and removed only through its owning aggregate's methods,
// never persisted independently.
type MorphGeneMapping struct {
	Entity

	GeneID     string   `json:"gene_id"`
	Zygosity   Zygosity `json:"zygosity"`
	IsRequired bool     `json:"is_required"`
}

// NewMorphGeneMapping builds a mapping for the given gene.
func NewMorphGeneMapping(geneID string, zygosity Zygosity, required bool) MorphGeneMapping {
	if zygosity == "" {
		zygosity = ZygosityUnknown
	}
	return MorphGeneMapping{
		Entity:     newEntity(),
		GeneID:     geneID,
		Zygosity:   zygosity,
		IsRequired: required,
	}
}

func findGeneMapping(mappings []MorphGeneMapping, geneID string) int {
	for i := range mappings {
		if mappings[i].GeneID == geneID {
			return i
		}
	}
	return -1
}

func findPicture(pictures []Picture, pictureID string) int {
	for i := range pictures {
		if pictures[i].ID == pictureID {
			return i
		}
	}
	return -1
}
