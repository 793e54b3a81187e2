package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/dto"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PetRecordsHandler manages the care log endpoints nested under a pet.
type PetRecordsHandler struct {
	records *service.PetRecordService
}

// NewPetRecordsHandler constructs handler.
func NewPetRecordsHandler(recordService *service.PetRecordService) *PetRecordsHandler {
	return &PetRecordsHandler{records: recordService}
}

// Create POST /v1/pets/:id/records.
func (h *PetRecordsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PetRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RecordType == "" {
		return apperrors.NewValidationError("record_type required", nil)
	}

	record, err := h.records.Create(c.Context(), principal.User, c.Params("id"), service.PetRecordInput{
		RecordType: req.RecordType,
		Data:       req.Data,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": petRecordResponse(record)})
}

// List GET /v1/pets/:id/records.
func (h *PetRecordsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := service.PetRecordListFilter{}
	if kind := c.Query("record_type"); kind != "" {
		recordType := domain.RecordType(kind)
		filter.RecordType = &recordType
	}
	filter.Limit, filter.Offset = parsePagination(c)

	records, err := h.records.List(c.Context(), principal.User, c.Params("id"), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PetRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, petRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /v1/pets/:id/records/:recordId.
func (h *PetRecordsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	record, err := h.records.Get(c.Context(), principal.User, c.Params("id"), c.Params("recordId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petRecordResponse(record)})
}

// Update PATCH /v1/pets/:id/records/:recordId.
func (h *PetRecordsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PetRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.records.Update(c.Context(), principal.User, c.Params("id"), c.Params("recordId"), service.PetRecordInput{
		Data:  req.Data,
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petRecordResponse(record)})
}

// Delete DELETE /v1/pets/:id/records/:recordId.
func (h *PetRecordsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.records.Delete(c.Context(), principal.User, c.Params("id"), c.Params("recordId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func petRecordResponse(record *domain.PetRecord) dto.PetRecordResponse {
	return dto.PetRecordResponse{
		ID:         record.ID,
		PetID:      record.PetID,
		CreatorID:  record.CreatorID,
		RecordType: record.RecordType,
		Data:       record.Data,
		Notes:      record.Notes,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}
