package model

import (
	"strings"

	"gorm.io/gorm"
)

type Activity struct {
	Model
	Name            string `gorm:"type:varchar(255);uniqueIndex;not null;check:min_name_length,length(name) >= 3" json:"name" validate:"required,trimmed_min=3,max=255"`
	Description     string `gorm:"type:text;not null;check:min_description_length,length(description) >= 10" json:"description" validate:"required,min=10"`
	Schedule        string `gorm:"type:varchar(500);not null" json:"schedule" validate:"required,max=500"`
	MaxParticipants int    `gorm:"not null;check:positive_max_participants,max_participants > 0" json:"max_participants" validate:"gt=0"`
	CreatedBy       *uint  `json:"created_by,omitempty"` // 创建者，可为空

	Creator     *User        `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Enrollments []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeSave(*gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return Validate(a)
}

// ParticipantCount 需要预加载 Enrollments
func (a *Activity) ParticipantCount() int {
	return len(a.Enrollments)
}

func (a *Activity) AvailableSpots() int {
	return a.MaxParticipants - a.ParticipantCount()
}

func (a *Activity) IsFull() bool {
	return a.AvailableSpots() <= 0
}

// ParticipantEmails 需要预加载 Enrollments.User
func (a *Activity) ParticipantEmails() []string {
	emails := make([]string, 0, len(a.Enrollments))
	for _, e := range a.Enrollments {
		if e.User != nil {
			emails = append(emails, e.User.Email)
		}
	}
	return emails
}
