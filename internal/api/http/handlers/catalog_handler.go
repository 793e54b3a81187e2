package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/dto"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// CatalogHandler manages breed, gene and morphology endpoints. Reads are
// open to any authenticated caller; mutations are admin-only, enforced at
// the router.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// CreateBreed POST /v1/breeds.
func (h *CatalogHandler) CreateBreed(c *fiber.Ctx) error {
	req, err := parseBreedRequest(c)
	if err != nil {
		return err
	}
	breed, err := h.catalog.CreateBreed(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": breedResponse(breed)})
}

// ListBreeds GET /v1/breeds.
func (h *CatalogHandler) ListBreeds(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	breeds, err := h.catalog.ListBreeds(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.BreedResponse, 0, len(breeds))
	for i := range breeds {
		items = append(items, breedResponse(&breeds[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetBreed GET /v1/breeds/:id.
func (h *CatalogHandler) GetBreed(c *fiber.Ctx) error {
	breed, err := h.catalog.GetBreed(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breedResponse(breed)})
}

// UpdateBreed PUT /v1/breeds/:id.
func (h *CatalogHandler) UpdateBreed(c *fiber.Ctx) error {
	req, err := parseBreedRequest(c)
	if err != nil {
		return err
	}
	breed, err := h.catalog.UpdateBreed(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breedResponse(breed)})
}

// DeleteBreed DELETE /v1/breeds/:id.
func (h *CatalogHandler) DeleteBreed(c *fiber.Ctx) error {
	if err := h.catalog.DeleteBreed(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateGene POST /v1/genes.
func (h *CatalogHandler) CreateGene(c *fiber.Ctx) error {
	req, err := parseGeneRequest(c)
	if err != nil {
		return err
	}
	gene, err := h.catalog.CreateGene(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": geneResponse(gene)})
}

// ListGenes GET /v1/genes.
func (h *CatalogHandler) ListGenes(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	genes, err := h.catalog.ListGenes(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.GeneResponse, 0, len(genes))
	for i := range genes {
		items = append(items, geneResponse(&genes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetGene GET /v1/genes/:id.
func (h *CatalogHandler) GetGene(c *fiber.Ctx) error {
	gene, err := h.catalog.GetGene(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": geneResponse(gene)})
}

// UpdateGene PUT /v1/genes/:id.
func (h *CatalogHandler) UpdateGene(c *fiber.Ctx) error {
	req, err := parseGeneRequest(c)
	if err != nil {
		return err
	}
	gene, err := h.catalog.UpdateGene(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": geneResponse(gene)})
}

// DeleteGene DELETE /v1/genes/:id.
func (h *CatalogHandler) DeleteGene(c *fiber.Ctx) error {
	if err := h.catalog.DeleteGene(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMorphology POST /v1/morphologies.
func (h *CatalogHandler) CreateMorphology(c *fiber.Ctx) error {
	req, err := parseMorphologyRequest(c)
	if err != nil {
		return err
	}
	morph, err := h.catalog.CreateMorphology(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": morphologyResponse(morph)})
}

// ListMorphologies GET /v1/morphologies.
func (h *CatalogHandler) ListMorphologies(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	morphs, err := h.catalog.ListMorphologies(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.MorphologyResponse, 0, len(morphs))
	for i := range morphs {
		items = append(items, morphologyResponse(&morphs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetMorphology GET /v1/morphologies/:id.
func (h *CatalogHandler) GetMorphology(c *fiber.Ctx) error {
	morph, err := h.catalog.GetMorphology(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": morphologyResponse(morph)})
}

// UpdateMorphology PUT /v1/morphologies/:id.
func (h *CatalogHandler) UpdateMorphology(c *fiber.Ctx) error {
	req, err := parseMorphologyRequest(c)
	if err != nil {
		return err
	}
	morph, err := h.catalog.UpdateMorphology(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": morphologyResponse(morph)})
}

// AddMorphologyGene POST /v1/morphologies/:id/genes.
func (h *CatalogHandler) AddMorphologyGene(c *fiber.Ctx) error {
	var req dto.GeneMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.GeneID == "" {
		return apperrors.NewValidationError("gene_id required", nil)
	}
	morph, err := h.catalog.AddMorphologyGene(c.Context(), c.Params("id"), service.GeneMappingInput{
		GeneID:   req.GeneID,
		Zygosity: req.Zygosity,
		Required: req.IsRequired,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": morphologyResponse(morph)})
}

// RemoveMorphologyGene DELETE /v1/morphologies/:id/genes/:geneId.
func (h *CatalogHandler) RemoveMorphologyGene(c *fiber.Ctx) error {
	morph, err := h.catalog.RemoveMorphologyGene(c.Context(), c.Params("id"), c.Params("geneId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": morphologyResponse(morph)})
}

// DeleteMorphology DELETE /v1/morphologies/:id.
func (h *CatalogHandler) DeleteMorphology(c *fiber.Ctx) error {
	if err := h.catalog.DeleteMorphology(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseBreedRequest(c *fiber.Ctx) (service.BreedInput, error) {
	var req dto.BreedRequest
	if err := c.BodyParser(&req); err != nil {
		return service.BreedInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return service.BreedInput{}, apperrors.NewValidationError("name required", nil)
	}
	input := service.BreedInput{Name: req.Name, Description: req.Description}
	if req.Thresholds != nil {
		input.Thresholds = &domain.LifeStageThresholds{
			AdultAfterYears:  req.Thresholds.AdultAfterYears,
			PrimeAfterYears:  req.Thresholds.PrimeAfterYears,
			SeniorAfterYears: req.Thresholds.SeniorAfterYears,
		}
	}
	return input, nil
}

func parseGeneRequest(c *fiber.Ctx) (service.GeneInput, error) {
	var req dto.GeneRequest
	if err := c.BodyParser(&req); err != nil {
		return service.GeneInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return service.GeneInput{}, apperrors.NewValidationError("name required", nil)
	}
	return service.GeneInput{
		Name:            req.Name,
		Alias:           req.Alias,
		Description:     req.Description,
		Notation:        req.Notation,
		InheritanceType: req.InheritanceType,
		Category:        req.Category,
	}, nil
}

func parseMorphologyRequest(c *fiber.Ctx) (service.MorphologyInput, error) {
	var req dto.MorphologyRequest
	if err := c.BodyParser(&req); err != nil {
		return service.MorphologyInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return service.MorphologyInput{}, apperrors.NewValidationError("name required", nil)
	}
	return service.MorphologyInput{Name: req.Name, Description: req.Description}, nil
}

func breedResponse(breed *domain.Breed) dto.BreedResponse {
	return dto.BreedResponse{
		ID:          breed.ID,
		Name:        breed.Name,
		Description: breed.Description,
		Thresholds: dto.ThresholdsPayload{
			AdultAfterYears:  breed.Thresholds.AdultAfterYears,
			PrimeAfterYears:  breed.Thresholds.PrimeAfterYears,
			SeniorAfterYears: breed.Thresholds.SeniorAfterYears,
		},
		Pictures:  pictureResponses(breed.Pictures),
		CreatedAt: breed.CreatedAt,
		UpdatedAt: breed.UpdatedAt,
	}
}

func geneResponse(gene *domain.Gene) dto.GeneResponse {
	return dto.GeneResponse{
		ID:              gene.ID,
		Name:            gene.Name,
		Alias:           gene.Alias,
		Description:     gene.Description,
		Notation:        gene.Notation,
		InheritanceType: gene.InheritanceType,
		Category:        gene.Category,
		CreatedAt:       gene.CreatedAt,
		UpdatedAt:       gene.UpdatedAt,
	}
}

func morphologyResponse(morph *domain.Morphology) dto.MorphologyResponse {
	mappings := make([]dto.GeneMappingResponse, 0, len(morph.GeneMappings))
	for _, m := range morph.GeneMappings {
		mappings = append(mappings, dto.GeneMappingResponse{
			ID:         m.ID,
			GeneID:     m.GeneID,
			Zygosity:   m.Zygosity,
			IsRequired: m.IsRequired,
		})
	}
	return dto.MorphologyResponse{
		ID:           morph.ID,
		Name:         morph.Name,
		Description:  morph.Description,
		GeneMappings: mappings,
		CreatedAt:    morph.CreatedAt,
		UpdatedAt:    morph.UpdatedAt,
	}
}
