package models

import (
	"strings"
	"time"
)

// Slot is a mentor-published interval of availability on a specific date.
// Start and end are wall-clock times on that date in "HH:MM" form; the
// interval is half-open, [start, end).
type Slot struct {
	BaseModel

	MentorID  string    `gorm:"type:uuid;not null;index:idx_slots_mentor_date" json:"mentor_id"`
	Date      time.Time `gorm:"not null;index:idx_slots_mentor_date" json:"date"`
	DayOfWeek string    `gorm:"type:varchar(16);not null" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`

	Mentor *User `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor,omitempty"`
}

// WeekdayLabel returns the canonical day-of-week label for a date.
func WeekdayLabel(date time.Time) string {
	return strings.ToUpper(date.Weekday().String())
}

// StartsAt combines the slot date and start time into a single UTC instant.
func (s *Slot) StartsAt() time.Time {
	return combineDateTime(s.Date, s.StartTime)
}

// EndsAt combines the slot date and end time into a single UTC instant.
func (s *Slot) EndsAt() time.Time {
	return combineDateTime(s.Date, s.EndTime)
}

func combineDateTime(date time.Time, clock string) time.Time {
	date = date.UTC()
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}
