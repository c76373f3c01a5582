package models

// Feedback is a rating left by one session participant about the other.
// The composite unique index allows each party to rate the other once per session.
type Feedback struct {
	BaseModel

	SessionID  string `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_once" json:"session_id"`
	FromUserID string `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_once" json:"from_user_id"`
	ToUserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_once;index" json:"to_user_id"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `gorm:"type:text" json:"comment,omitempty"`

	Session  *Session `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
	FromUser *User    `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"from_user,omitempty"`
	ToUser   *User    `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"to_user,omitempty"`
}
