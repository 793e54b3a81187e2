package domain

import (
	"strings"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// RecordType enumerates the kinds of care records kept for a pet.
type RecordType string

const (
	RecordFeeding     RecordType = "feeding"
	RecordWeighing    RecordType = "weighing"
	RecordShedding    RecordType = "shedding"
	RecordHealthCheck RecordType = "health_check"
	RecordBehavior    RecordType = "behavior"
	RecordEnvironment RecordType = "environment"
	RecordOther       RecordType = "other"
)

// AllRecordTypes lists every record type.
func AllRecordTypes() []RecordType {
	return []RecordType{
		RecordFeeding, RecordWeighing, RecordShedding, RecordHealthCheck,
		RecordBehavior, RecordEnvironment, RecordOther,
	}
}

// ValidRecordType reports whether t is a known record type.
func ValidRecordType(t RecordType) bool {
	for _, known := range AllRecordTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// RecordData carries the type-specific fields of a care record. The shape
// is free-form apart from the keys each record type requires.
type RecordData map[string]any

// PetRecord is a dated care entry for a pet: a feeding, a weighing, a
// health observation and so on. Records are append-mostly; edits are
// allowed but replace the data wholesale.
type PetRecord struct {
	AggregateRoot

	PetID      string     `json:"pet_id"`
	CreatorID  string     `json:"creator_id"`
	RecordType RecordType `json:"record_type"`
	Data       RecordData `json:"data"`
	Notes      *string    `json:"notes,omitempty"`
}

// NewPetRecord constructs a care record after validating the payload
// against the record type's required fields.
func NewPetRecord(petID, creatorID string, recordType RecordType, data RecordData, notes *string) (*PetRecord, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, apperrors.NewValidationError("pet id required", nil)
	}
	if strings.TrimSpace(creatorID) == "" {
		return nil, apperrors.NewValidationError("creator id required", nil)
	}
	if !ValidRecordType(recordType) {
		return nil, apperrors.NewValidationError("unknown record type", map[string]any{"record_type": string(recordType)})
	}
	if data == nil {
		data = RecordData{}
	}
	if err := validateRecordData(recordType, data); err != nil {
		return nil, err
	}
	record := &PetRecord{
		AggregateRoot: newAggregateRoot(),
		PetID:         petID,
		CreatorID:     creatorID,
		RecordType:    recordType,
		Data:          data,
		Notes:         trimOptional(notes),
	}
	record.record(EventPetRecordCreated, PetRecordPayload{PetID: petID, RecordType: recordType})
	return record, nil
}

// Update replaces the record's data and notes. The record type is fixed
// at creation.
func (r *PetRecord) Update(data RecordData, notes *string) error {
	if err := r.ensureMutable("pet record"); err != nil {
		return err
	}
	if data == nil {
		data = RecordData{}
	}
	if err := validateRecordData(r.RecordType, data); err != nil {
		return err
	}
	r.Data = data
	r.Notes = trimOptional(notes)
	r.touch()
	r.record(EventPetRecordUpdated, PetRecordPayload{PetID: r.PetID, RecordType: r.RecordType})
	return nil
}

// Delete soft-deletes the record.
func (r *PetRecord) Delete() {
	if r.IsDeleted {
		return
	}
	r.MarkDeleted()
	r.record(EventPetRecordDeleted, PetRecordPayload{PetID: r.PetID, RecordType: r.RecordType})
}

// validateRecordData enforces the per-type required fields. Types without
// required fields accept any payload.
func validateRecordData(recordType RecordType, data RecordData) error {
	switch recordType {
	case RecordFeeding:
		if !hasStringField(data, "food_name") {
			return apperrors.NewValidationError("feeding record requires food_name", nil)
		}
		if !hasPositiveNumber(data, "food_amount") {
			return apperrors.NewValidationError("feeding record requires a positive food_amount", nil)
		}
	case RecordWeighing:
		if !hasPositiveNumber(data, "weight") {
			return apperrors.NewValidationError("weighing record requires a positive weight", nil)
		}
	}
	return nil
}

func hasStringField(data RecordData, key string) bool {
	val, ok := data[key].(string)
	return ok && strings.TrimSpace(val) != ""
}

// hasPositiveNumber accepts the numeric types a JSON decoder or a caller
// may hand us.
func hasPositiveNumber(data RecordData, key string) bool {
	switch val := data[key].(type) {
	case float64:
		return val > 0
	case float32:
		return val > 0
	case int:
		return val > 0
	case int64:
		return val > 0
	default:
		return false
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
