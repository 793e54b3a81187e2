package domain

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserProfileUpdated  EventType = "user_profile_updated"
	EventUserUsernameChanged EventType = "user_username_changed"
	EventUserPasswordChanged EventType = "user_password_changed"
	EventUserActivated       EventType = "user_activated"
	EventUserDeactivated     EventType = "user_deactivated"
	EventUserRolePromoted    EventType = "user_role_promoted"
	EventUserRoleDemoted     EventType = "user_role_demoted"
	EventUserDeleted         EventType = "user_deleted"

	EventPetCreated              EventType = "pet_created"
	EventPetOwnershipTransferred EventType = "pet_ownership_transferred"
	EventPetMorphologyUpdated    EventType = "pet_morphology_updated"
	EventPetGeneMappingAdded     EventType = "pet_gene_mapping_added"
	EventPetGeneMappingRemoved   EventType = "pet_gene_mapping_removed"
	EventPetDeleted              EventType = "pet_deleted"

	EventPetRecordCreated EventType = "pet_record_created"
	EventPetRecordUpdated EventType = "pet_record_updated"
	EventPetRecordDeleted EventType = "pet_record_deleted"

	EventBreedCreated      EventType = "breed_created"
	EventBreedUpdated      EventType = "breed_updated"
	EventBreedDeleted      EventType = "breed_deleted"
	EventGeneCreated       EventType = "gene_created"
	EventGeneUpdated       EventType = "gene_updated"
	EventGeneDeleted       EventType = "gene_deleted"
	EventMorphologyCreated EventType = "morphology_created"
	EventMorphologyUpdated EventType = "morphology_updated"
	EventMorphologyDeleted EventType = "morphology_deleted"
)

// AllEventTypes lists every event type, for subscribers that want the full
// stream.
func AllEventTypes() []EventType {
	return []EventType{
		EventUserRegistered, EventUserProfileUpdated, EventUserUsernameChanged,
		EventUserPasswordChanged, EventUserActivated, EventUserDeactivated,
		EventUserRolePromoted, EventUserRoleDemoted, EventUserDeleted,
		EventPetCreated, EventPetOwnershipTransferred, EventPetMorphologyUpdated,
		EventPetGeneMappingAdded, EventPetGeneMappingRemoved, EventPetDeleted,
		EventPetRecordCreated, EventPetRecordUpdated, EventPetRecordDeleted,
		EventBreedCreated, EventBreedUpdated, EventBreedDeleted,
		EventGeneCreated, EventGeneUpdated, EventGeneDeleted,
		EventMorphologyCreated, EventMorphologyUpdated, EventMorphologyDeleted,
	}
}

// Event is an immutable record of a state change, captured at mutation time
// and delivered to subscribers only after successful persistence.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	UpdatedFields []string `json:"updated_fields"`
}

// UsernameChangedPayload payload.
type UsernameChangedPayload struct {
	OldUsername string `json:"old_username"`
	NewUsername string `json:"new_username"`
}

// RoleChangedPayload payload for promotions and demotions.
type RoleChangedPayload struct {
	OldRole Role    `json:"old_role"`
	NewRole Role    `json:"new_role"`
	ActorID *string `json:"actor_id,omitempty"`
}

// ActivationChangedPayload payload.
type ActivationChangedPayload struct {
	Active bool `json:"active"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Username string `json:"username"`
}

// PetCreatedPayload payload.
type PetCreatedPayload struct {
	OwnerID string `json:"owner_id"`
	BreedID string `json:"breed_id"`
	Name    string `json:"name"`
}

// OwnershipTransferredPayload payload.
type OwnershipTransferredPayload struct {
	OldOwnerID string `json:"old_owner_id"`
	NewOwnerID string `json:"new_owner_id"`
}

// PetRecordPayload payload for care record events.
type PetRecordPayload struct {
	PetID      string     `json:"pet_id"`
	RecordType RecordType `json:"record_type"`
}

// MorphologyRefUpdatedPayload payload.
type MorphologyRefUpdatedPayload struct {
	MorphologyID *string `json:"morphology_id"`
}

// GeneMappingPayload payload for gene-mapping additions and removals.
type GeneMappingPayload struct {
	GeneID   string   `json:"gene_id"`
	Zygosity Zygosity `json:"zygosity,omitempty"`
}

// PetDeletedPayload payload.
type PetDeletedPayload struct {
	OwnerID string `json:"owner_id"`
}

// CatalogEntryPayload payload shared by breed/gene/morphology lifecycle
// events.
type CatalogEntryPayload struct {
	Name string `json:"name"`
}
