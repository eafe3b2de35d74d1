package domain

import (
	"context"
	"time"
)

type ExperienceLevel string

const (
	ExperienceNone     ExperienceLevel = "No Experience"
	ExperienceSome     ExperienceLevel = "Some Experience"
	ExperienceModerate ExperienceLevel = "Moderate Experience"
	ExperienceFull     ExperienceLevel = "Experienced"
)

type StudentStatus string

const (
	StudentNational      StudentStatus = "National"
	StudentInternational StudentStatus = "International"
)

// UserPreferences holds a user's stated job preferences. Every field is
// optional: a nil pointer or empty slice means the user never answered that
// onboarding question, and the field must be excluded from scoring entirely
// rather than defaulted.
type UserPreferences struct {
	RemoteOnly              *bool            `json:"remoteOnly,omitempty"`
	VisaSponsorshipRequired *bool            `json:"visaSponsorshipRequired,omitempty"`
	PreferredLocations      []string         `json:"preferredLocations,omitempty"`
	SalaryRange             *SalaryRange     `json:"preferredSalaryRange,omitempty"`
	JobTypes                []string         `json:"jobTypes,omitempty"`
	Skills                  []string         `json:"skills,omitempty"`
	ExperienceLevel         *ExperienceLevel `json:"experienceLevel,omitempty"`
	OtherRelevance          []string         `json:"otherRelevance,omitempty"`
	// Onboarding fields
	GraduationYear *string        `json:"graduationYear,omitempty"`
	Major          *string        `json:"major,omitempty"`
	StudentStatus  *StudentStatus `json:"studentStatus,omitempty"`
	// Settings
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
}

// DefaultPreferences returns an all-unset preference record, the state of a
// freshly created account.
func DefaultPreferences() UserPreferences {
	return UserPreferences{}
}

type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Preferences UserPreferences `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdatePreferences(ctx context.Context, userID string, prefs UserPreferences) error
	// ListNotifiable returns users with notifications enabled (digest targets).
	ListNotifiable(ctx context.Context) ([]User, error)
}

type UserUsecase interface {
	GetPreferences(ctx context.Context, userID string) (UserPreferences, error)
	// UpdatePreferences merges the submitted fields into the stored record;
	// omitted fields are left untouched (onboarding is incremental).
	UpdatePreferences(ctx context.Context, userID string, update PreferencesUpdate) (UserPreferences, error)
}

// PreferencesUpdate is a partial preference mutation. Only non-nil fields are
// applied. Slices replace the stored slice wholesale (the onboarding screens
// always submit complete lists).
type PreferencesUpdate struct {
	RemoteOnly              *bool            `json:"remoteOnly,omitempty"`
	VisaSponsorshipRequired *bool            `json:"visaSponsorshipRequired,omitempty"`
	PreferredLocations      []string         `json:"preferredLocations,omitempty"`
	SalaryRange             *SalaryRange     `json:"preferredSalaryRange,omitempty"`
	JobTypes                []string         `json:"jobTypes,omitempty"`
	Skills                  []string         `json:"skills,omitempty"`
	ExperienceLevel         *ExperienceLevel `json:"experienceLevel,omitempty" validate:"omitempty,oneof='No Experience' 'Some Experience' 'Moderate Experience' 'Experienced'"`
	OtherRelevance          []string         `json:"otherRelevance,omitempty"`
	GraduationYear          *string          `json:"graduationYear,omitempty"`
	Major                   *string          `json:"major,omitempty"`
	StudentStatus           *StudentStatus   `json:"studentStatus,omitempty" validate:"omitempty,oneof=National International"`
	NotificationsEnabled    *bool            `json:"notificationsEnabled,omitempty"`
}
