package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleDoctor  UserRole = "DOCTOR"
	UserRolePatient UserRole = "PATIENT"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Role         UserRole  `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Patient struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	DateOfBirth string    `gorm:"type:varchar(10)" json:"dateOfBirth,omitempty"`
	Gender      string    `gorm:"type:varchar(16)" json:"gender,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AuthUser is the authenticated caller resolved from the access token.
// ProfileID is the patient id for patients and the doctor id for doctors.
type AuthUser struct {
	UserID    string
	Role      UserRole
	ProfileID string
}

func (u *AuthUser) IsAdmin() bool   { return u != nil && u.Role == UserRoleAdmin }
func (u *AuthUser) IsDoctor() bool  { return u != nil && u.Role == UserRoleDoctor }
func (u *AuthUser) IsPatient() bool { return u != nil && u.Role == UserRolePatient }
