package models

// RequestStatus is the lifecycle state of a reservation attempt.
type RequestStatus string

const (
	// RequestStatusPending marks a request awaiting the mentor's decision.
	RequestStatusPending RequestStatus = "PENDING"
	// RequestStatusApproved marks a request promoted into a session.
	RequestStatusApproved RequestStatus = "APPROVED"
	// RequestStatusDeclined marks a rejected request, retained as history.
	RequestStatusDeclined RequestStatus = "DECLINED"
)

// Active reports whether the status blocks new requests on the same slot.
func (s RequestStatus) Active() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

// Request is a mentee's reservation attempt against a slot. The mentor id is
// denormalised from the slot at creation so request listings need no join.
type Request struct {
	BaseModel

	SlotID   string        `gorm:"type:uuid;not null;index" json:"slot_id"`
	MenteeID string        `gorm:"type:uuid;not null;index" json:"mentee_id"`
	MentorID string        `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Note     string        `gorm:"type:text" json:"note,omitempty"`
	Status   RequestStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`

	Slot   *Slot `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE" json:"slot,omitempty"`
	Mentee *User `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"mentee,omitempty"`
	Mentor *User `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor,omitempty"`
}
