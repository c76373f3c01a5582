package models

// Role distinguishes the two account types on the platform.
type Role string

const (
	// RoleMentor marks users who publish availability slots.
	RoleMentor Role = "mentor"
	// RoleMentee marks users who reserve slots for sessions.
	RoleMentee Role = "mentee"
)

// Valid reports whether the role is one of the known account types.
func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// User represents a registered mentor or mentee account.
type User struct {
	BaseModel

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;uniqueIndex" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(16);not null;index" json:"role"`
}
