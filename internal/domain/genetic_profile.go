package domain

import "sort"

// GeneExpression is one gene of a pet's genetic profile, joined with the
// catalog data needed to reason about expression.
type GeneExpression struct {
	GeneID      string          `json:"gene_id"`
	GeneName    string          `json:"gene_name"`
	Zygosity    Zygosity        `json:"zygosity"`
	Inheritance InheritanceType `json:"inheritance_type"`
}

// IsExpressed reports whether the gene shows in the phenotype: homozygous
// genes always do, heterozygous ones only under a dominant inheritance
// mode. Unknown zygosity never counts as expressed.
func (e GeneExpression) IsExpressed() bool {
	switch e.Zygosity {
	case ZygosityHomozygous:
		return true
	case ZygosityHeterozygous:
		return e.Inheritance == InheritanceDominant || e.Inheritance == InheritanceAutosomalDominant
	default:
		return false
	}
}

// IsCarried reports whether the pet carries the gene without expressing
// it, which matters for breeding decisions.
func (e GeneExpression) IsCarried() bool {
	return e.Zygosity == ZygosityHeterozygous && !e.IsExpressed()
}

// GeneticProfile is a read model over a pet's gene mappings. It is built
// on demand and never persisted.
type GeneticProfile struct {
	PetID       string           `json:"pet_id"`
	Expressions []GeneExpression `json:"expressions"`
}

// GeneticSummary aggregates a profile's expression counts.
type GeneticSummary struct {
	TotalGenes   int `json:"total_genes"`
	Homozygous   int `json:"homozygous"`
	Heterozygous int `json:"heterozygous"`
	Unknown      int `json:"unknown"`
	Expressed    int `json:"expressed"`
	Carried      int `json:"carried"`
}

// OffspringTrait is one predicted trait from pairing two profiles.
type OffspringTrait struct {
	GeneID      string   `json:"gene_id"`
	GeneName    string   `json:"gene_name"`
	Zygosity    Zygosity `json:"zygosity"`
	Probability float64  `json:"probability"`
}

// GeneticCompatibility summarizes how two profiles relate.
type GeneticCompatibility struct {
	Score            float64          `json:"score"`
	SharedGenes      []string         `json:"shared_genes"`
	GeneticDiversity float64          `json:"genetic_diversity"`
	OffspringTraits  []OffspringTrait `json:"offspring_traits"`
}

// BuildGeneticProfile joins the pet's gene mappings with their catalog
// genes. Mappings whose gene is missing from the lookup are skipped.
func BuildGeneticProfile(pet *Pet, genes map[string]*Gene) GeneticProfile {
	profile := GeneticProfile{PetID: pet.ID, Expressions: []GeneExpression{}}
	for _, mapping := range pet.GeneMappings {
		gene, ok := genes[mapping.GeneID]
		if !ok {
			continue
		}
		profile.Expressions = append(profile.Expressions, GeneExpression{
			GeneID:      mapping.GeneID,
			GeneName:    gene.Name,
			Zygosity:    mapping.Zygosity,
			Inheritance: gene.InheritanceType,
		})
	}
	return profile
}

// HasGene reports whether the profile contains the gene.
func (p GeneticProfile) HasGene(geneID string) bool {
	return p.find(geneID) != nil
}

func (p GeneticProfile) find(geneID string) *GeneExpression {
	for i := range p.Expressions {
		if p.Expressions[i].GeneID == geneID {
			return &p.Expressions[i]
		}
	}
	return nil
}

// Summary counts the profile's expressions by zygosity and visibility.
func (p GeneticProfile) Summary() GeneticSummary {
	summary := GeneticSummary{TotalGenes: len(p.Expressions)}
	for _, expr := range p.Expressions {
		switch expr.Zygosity {
		case ZygosityHomozygous:
			summary.Homozygous++
		case ZygosityHeterozygous:
			summary.Heterozygous++
		default:
			summary.Unknown++
		}
		if expr.IsExpressed() {
			summary.Expressed++
		}
		if expr.IsCarried() {
			summary.Carried++
		}
	}
	return summary
}

// CompatibilityScore scores the overlap between two profiles on [0, 1].
// Genes present in both contribute 1.0 when the zygosity matches and 0.5
// when it differs; no shared genes scores zero.
func (p GeneticProfile) CompatibilityScore(other GeneticProfile) float64 {
	shared := 0
	total := 0.0
	for _, expr := range p.Expressions {
		match := other.find(expr.GeneID)
		if match == nil {
			continue
		}
		shared++
		if expr.Zygosity == match.Zygosity {
			total += 1.0
		} else {
			total += 0.5
		}
	}
	if shared == 0 {
		return 0
	}
	return total / float64(shared)
}

// CompareWith builds the full compatibility report against another
// profile, including naive offspring predictions per gene.
func (p GeneticProfile) CompareWith(other GeneticProfile) GeneticCompatibility {
	report := GeneticCompatibility{
		Score:           p.CompatibilityScore(other),
		SharedGenes:     []string{},
		OffspringTraits: []OffspringTrait{},
	}

	seen := map[string]bool{}
	for _, expr := range p.Expressions {
		seen[expr.GeneID] = true
		match := other.find(expr.GeneID)
		if match != nil {
			report.SharedGenes = append(report.SharedGenes, expr.GeneID)
			report.OffspringTraits = append(report.OffspringTraits, predictTrait(expr, match))
			continue
		}
		report.OffspringTraits = append(report.OffspringTraits, OffspringTrait{
			GeneID:      expr.GeneID,
			GeneName:    expr.GeneName,
			Zygosity:    ZygosityHeterozygous,
			Probability: 0.5,
		})
	}
	union := len(seen)
	for _, expr := range other.Expressions {
		if seen[expr.GeneID] {
			continue
		}
		union++
		report.OffspringTraits = append(report.OffspringTraits, OffspringTrait{
			GeneID:      expr.GeneID,
			GeneName:    expr.GeneName,
			Zygosity:    ZygosityHeterozygous,
			Probability: 0.5,
		})
	}
	if union > 0 {
		report.GeneticDiversity = float64(len(report.SharedGenes)) / float64(union)
	}
	sort.Strings(report.SharedGenes)
	sort.Slice(report.OffspringTraits, func(i, j int) bool {
		return report.OffspringTraits[i].GeneID < report.OffspringTraits[j].GeneID
	})
	return report
}

func predictTrait(a GeneExpression, b *GeneExpression) OffspringTrait {
	trait := OffspringTrait{GeneID: a.GeneID, GeneName: a.GeneName}
	if a.Zygosity == ZygosityHomozygous && b.Zygosity == ZygosityHomozygous {
		trait.Zygosity = ZygosityHomozygous
		trait.Probability = 1.0
		return trait
	}
	trait.Zygosity = ZygosityHeterozygous
	trait.Probability = 0.5
	return trait
}
