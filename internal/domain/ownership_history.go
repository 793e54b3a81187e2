package domain

import "time"

// OwnershipRecord is one owner's tenure over a pet. A nil EndDate marks
// the current owner.
type OwnershipRecord struct {
	OwnerID   string     `json:"owner_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// IsCurrent reports whether this record is the open tenure.
func (r OwnershipRecord) IsCurrent() bool {
	return r.EndDate == nil
}

// Duration returns the tenure length, measured to now for the open record.
func (r OwnershipRecord) Duration(now time.Time) time.Duration {
	end := now
	if r.EndDate != nil {
		end = *r.EndDate
	}
	return end.Sub(r.StartDate)
}

// OwnershipHistory lists a pet's ownership tenures in chronological
// order. It is folded from the audit event stream, not stored.
type OwnershipHistory struct {
	PetID   string            `json:"pet_id"`
	Records []OwnershipRecord `json:"records"`
}

// CurrentOwner returns the open record's owner.
func (h OwnershipHistory) CurrentOwner() (string, bool) {
	for i := len(h.Records) - 1; i >= 0; i-- {
		if h.Records[i].IsCurrent() {
			return h.Records[i].OwnerID, true
		}
	}
	return "", false
}

// BuildOwnershipHistory folds creation and transfer events into tenures.
// When the stream carries no creation event, for instance because the
// audit log started after the pet existed, the pet's current state seeds
// the single open record.
func BuildOwnershipHistory(pet *Pet, stream []Event) OwnershipHistory {
	history := OwnershipHistory{PetID: pet.ID, Records: []OwnershipRecord{}}

	open := func(ownerID string, at time.Time) {
		history.Records = append(history.Records, OwnershipRecord{OwnerID: ownerID, StartDate: at})
	}
	closeOpen := func(at time.Time) {
		if n := len(history.Records); n > 0 && history.Records[n-1].EndDate == nil {
			end := at
			history.Records[n-1].EndDate = &end
		}
	}

	for _, event := range stream {
		if event.AggregateID != pet.ID {
			continue
		}
		switch event.Type {
		case EventPetCreated:
			if owner := createdOwner(event.Payload); owner != "" && len(history.Records) == 0 {
				open(owner, event.OccurredAt)
			}
		case EventPetOwnershipTransferred:
			newOwner := transferredOwner(event.Payload)
			if newOwner == "" {
				continue
			}
			closeOpen(event.OccurredAt)
			open(newOwner, event.OccurredAt)
		}
	}

	if len(history.Records) == 0 {
		open(pet.OwnerID, pet.CreatedAt)
	}
	return history
}

// createdOwner reads the owner from a creation payload, which arrives
// typed from in-process dispatch and as a decoded map from the audit log.
func createdOwner(payload any) string {
	switch p := payload.(type) {
	case PetCreatedPayload:
		return p.OwnerID
	case map[string]any:
		owner, _ := p["owner_id"].(string)
		return owner
	}
	return ""
}

func transferredOwner(payload any) string {
	switch p := payload.(type) {
	case OwnershipTransferredPayload:
		return p.NewOwnerID
	case map[string]any:
		owner, _ := p["new_owner_id"].(string)
		return owner
	}
	return ""
}
