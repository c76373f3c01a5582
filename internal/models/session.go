package models

import "time"

// SessionStatus is the lifecycle state of a confirmed session.
type SessionStatus string

const (
	// SessionStatusScheduled marks an upcoming session.
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	// SessionStatusCompleted marks a session whose scheduled instant has passed.
	SessionStatusCompleted SessionStatus = "COMPLETED"
	// SessionStatusCancelled marks an administratively cancelled session.
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// Session is the confirmed meeting created when a request is approved.
// Exactly one session exists per approved request.
type Session struct {
	BaseModel

	MentorID    string        `gorm:"type:uuid;not null;index" json:"mentor_id"`
	MenteeID    string        `gorm:"type:uuid;not null;index" json:"mentee_id"`
	RequestID   string        `gorm:"type:uuid;not null;uniqueIndex" json:"request_id"`
	ScheduledAt time.Time     `gorm:"not null;index" json:"scheduled_at"`
	MeetLink    string        `gorm:"not null" json:"meet_link"`
	Status      SessionStatus `gorm:"type:varchar(16);not null;default:'SCHEDULED';index" json:"status"`

	Mentor  *User    `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor,omitempty"`
	Mentee  *User    `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"mentee,omitempty"`
	Request *Request `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"request,omitempty"`
}
