package models

import (
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimeRange is a half open HH:mm window.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Valid reports whether both ends are zero padded HH:mm clocks and the range
// is not empty.
func (r TimeRange) Valid() bool {
	start, err := parseClock(r.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(r.End)
	if err != nil {
		return false
	}
	return start.Before(end)
}

func parseClock(clock string) (time.Time, error) {
	if len(clock) != len(constvars.TimeLayout) {
		return time.Time{}, fmt.Errorf("clock %q is not in HH:mm format", clock)
	}
	return time.Parse(constvars.TimeLayout, clock)
}

// WorkingHours maps a lower case weekday name ("monday") to its ranges.
type WorkingHours map[string][]TimeRange

// For returns the ranges declared for the weekday of t.
func (w WorkingHours) For(weekday time.Weekday) []TimeRange {
	return w[strings.ToLower(weekday.String())]
}

// Validate rejects any range that slot arithmetic and string ordering of
// HH:mm values cannot handle.
func (w WorkingHours) Validate() error {
	for day, ranges := range w {
		for _, r := range ranges {
			if !r.Valid() {
				return fmt.Errorf("working hours %s: invalid range %q-%q", day, r.Start, r.End)
			}
		}
	}
	return nil
}

type Doctor struct {
	ID                  string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID              string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	ClinicID            string         `gorm:"type:varchar(36);not null;index" json:"clinicId"`
	SpecialtyID         string         `gorm:"type:varchar(36);not null;index" json:"specialtyId"`
	FullName            string         `gorm:"type:varchar(255);not null" json:"fullName"`
	Title               string         `gorm:"type:varchar(64)" json:"title,omitempty"`
	Bio                 string         `gorm:"type:text" json:"bio,omitempty"`
	ConsultationFee     int64          `gorm:"not null;default:0" json:"consultationFee"`
	ExperienceYears     int            `gorm:"not null;default:0" json:"experienceYears"`
	Rating              float64        `gorm:"not null;default:0" json:"rating"`
	RatingCount         int            `gorm:"not null;default:0" json:"ratingCount"`
	IsAvailable         bool           `gorm:"not null;default:true" json:"isAvailable"`
	SlotDurationMinutes int            `gorm:"not null;default:30" json:"slotDurationMinutes"`
	WorkingHours        datatypes.JSON `json:"workingHours,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinic    *Clinic    `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Schedule decodes the working hours template. An empty template is not an
// error; a template holding a malformed range is rejected as a whole.
func (d *Doctor) Schedule() (WorkingHours, error) {
	hours := WorkingHours{}
	if len(d.WorkingHours) == 0 {
		return hours, nil
	}
	if err := json.Unmarshal(d.WorkingHours, &hours); err != nil {
		return nil, err
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return hours, nil
}

func (d *Doctor) SetSchedule(hours WorkingHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	d.WorkingHours = datatypes.JSON(raw)
	return nil
}

// DoctorFilter narrows doctor search.
type DoctorFilter struct {
	SpecialtyID   string
	ClinicID      string
	Query         string
	AvailableOnly bool
	Page          int
	PageSize      int
}
