package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/dto"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PetsHandler manages pet endpoints.
type PetsHandler struct {
	pets  *service.PetService
	audit *service.AuditService
}

// NewPetsHandler constructs handler.
func NewPetsHandler(petService *service.PetService, auditService *service.AuditService) *PetsHandler {
	return &PetsHandler{pets: petService, audit: auditService}
}

// Create POST /v1/pets.
func (h *PetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.BreedID == "" {
		return apperrors.NewValidationError("name and breed_id required", nil)
	}

	mappings := make([]service.GeneMappingInput, 0, len(req.GeneMappings))
	for _, m := range req.GeneMappings {
		mappings = append(mappings, service.GeneMappingInput{
			GeneID:   m.GeneID,
			Zygosity: m.Zygosity,
			Required: m.IsRequired,
		})
	}
	pet, err := h.pets.CreatePet(c.Context(), principal.User.ID, service.PetCreateInput{
		Name:         req.Name,
		Description:  req.Description,
		BreedID:      req.BreedID,
		Gender:       req.Gender,
		BirthDate:    req.BirthDate,
		MorphologyID: req.MorphologyID,
		GeneMappings: mappings,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": petResponse(pet)})
}

// List GET /v1/pets.
func (h *PetsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	pets, err := h.pets.ListPets(c.Context(), principal.User, parsePetQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		items = append(items, petResponse(&pets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /v1/pets/:id.
func (h *PetsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	pet, err := h.pets.GetPet(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// Update PATCH /v1/pets/:id.
func (h *PetsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	pet, err := h.pets.UpdateDetails(c.Context(), principal.User, c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// Transfer POST /v1/pets/:id/transfer.
func (h *PetsHandler) Transfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransferOwnershipRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewOwnerID == "" {
		return apperrors.NewValidationError("new_owner_id required", nil)
	}
	pet, err := h.pets.TransferOwnership(c.Context(), principal.User, c.Params("id"), req.NewOwnerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// SetBirthDate PUT /v1/pets/:id/birth-date.
func (h *PetsHandler) SetBirthDate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetBirthDateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BirthDate.IsZero() {
		return apperrors.NewValidationError("birth_date required", nil)
	}
	pet, err := h.pets.SetBirthDate(c.Context(), principal.User, c.Params("id"), req.BirthDate)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// SetMorphology PUT /v1/pets/:id/morphology.
func (h *PetsHandler) SetMorphology(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetMorphologyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	pet, err := h.pets.UpdateMorphology(c.Context(), principal.User, c.Params("id"), req.MorphologyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// AddGene POST /v1/pets/:id/genes.
func (h *PetsHandler) AddGene(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.GeneMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.GeneID == "" {
		return apperrors.NewValidationError("gene_id required", nil)
	}
	pet, err := h.pets.AddGeneMapping(c.Context(), principal.User, c.Params("id"), service.GeneMappingInput{
		GeneID:   req.GeneID,
		Zygosity: req.Zygosity,
		Required: req.IsRequired,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": petResponse(pet)})
}

// RemoveGene DELETE /v1/pets/:id/genes/:geneId.
func (h *PetsHandler) RemoveGene(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	pet, err := h.pets.RemoveGeneMapping(c.Context(), principal.User, c.Params("id"), c.Params("geneId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// AddPicture POST /v1/pets/:id/pictures.
func (h *PetsHandler) AddPicture(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PictureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.URL) == "" {
		return apperrors.NewValidationError("url required", nil)
	}
	pet, err := h.pets.AddPicture(c.Context(), principal.User, c.Params("id"), req.URL, req.Kind)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": petResponse(pet)})
}

// RemovePicture DELETE /v1/pets/:id/pictures/:pictureId.
func (h *PetsHandler) RemovePicture(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	pet, err := h.pets.RemovePicture(c.Context(), principal.User, c.Params("id"), c.Params("pictureId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// Age GET /v1/pets/:id/age.
func (h *PetsHandler) Age(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	report, err := h.pets.AgeReport(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// History GET /v1/pets/:id/history.
func (h *PetsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	// access check via the usual path
	pet, err := h.pets.GetPet(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	entries, err := h.audit.History(c.Context(), pet.ID)
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.EventResponse{
			ID:         entry.ID,
			Type:       string(entry.Type),
			OccurredAt: entry.OccurredAt,
			Payload:    entry.Payload,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Genetics GET /v1/pets/:id/genetics.
func (h *PetsHandler) Genetics(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	profile, err := h.pets.GeneticProfile(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"profile": profile,
		"summary": profile.Summary(),
	}})
}

// CompareGenetics GET /v1/pets/:id/genetics/compatibility.
func (h *PetsHandler) CompareGenetics(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	otherID := c.Query("other_id")
	if otherID == "" {
		return apperrors.NewValidationError("other_id required", nil)
	}
	report, err := h.pets.CompareGenetics(c.Context(), principal.User, c.Params("id"), otherID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Ownership GET /v1/pets/:id/ownership.
func (h *PetsHandler) Ownership(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	history, err := h.pets.OwnershipHistory(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

// Delete DELETE /v1/pets/:id.
func (h *PetsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.pets.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parsePetQuery(c *fiber.Ctx) service.PetListFilter {
	filter := service.PetListFilter{}
	if owner := c.Query("owner_id"); owner != "" {
		filter.OwnerID = &owner
	}
	if breed := c.Query("breed_id"); breed != "" {
		filter.BreedID = &breed
	}
	if morph := c.Query("morphology_id"); morph != "" {
		filter.MorphologyID = &morph
	}
	if gender := c.Query("gender"); gender != "" {
		g := domain.Gender(gender)
		filter.Gender = &g
	}
	filter.Limit, filter.Offset = parsePagination(c)
	return filter
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func petResponse(pet *domain.Pet) dto.PetResponse {
	mappings := make([]dto.GeneMappingResponse, 0, len(pet.GeneMappings))
	for _, m := range pet.GeneMappings {
		mappings = append(mappings, dto.GeneMappingResponse{
			ID:         m.ID,
			GeneID:     m.GeneID,
			Zygosity:   m.Zygosity,
			IsRequired: m.IsRequired,
		})
	}
	return dto.PetResponse{
		ID:           pet.ID,
		Name:         pet.Name,
		Description:  pet.Description,
		BirthDate:    pet.BirthDate,
		OwnerID:      pet.OwnerID,
		BreedID:      pet.BreedID,
		Gender:       pet.Gender,
		MorphologyID: pet.MorphologyID,
		GeneMappings: mappings,
		Pictures:     pictureResponses(pet.Pictures),
		CreatedAt:    pet.CreatedAt,
		UpdatedAt:    pet.UpdatedAt,
	}
}

func pictureResponses(pictures []domain.Picture) []dto.PictureResponse {
	resp := make([]dto.PictureResponse, 0, len(pictures))
	for _, pic := range pictures {
		resp = append(resp, dto.PictureResponse{ID: pic.ID, URL: pic.URL, Kind: pic.Kind})
	}
	return resp
}
