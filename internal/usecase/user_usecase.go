package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type userUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, validate: validate}
}

// GetPreferences returns the stored preference record, or the all-unset
// default when the user has not completed any onboarding step yet.
func (u *userUsecase) GetPreferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	if userID == "" {
		return domain.UserPreferences{}, apperror.Unauthorized("User not authenticated")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.UserPreferences{}, apperror.Unavailable(err)
	}
	return user.Preferences, nil
}

// UpdatePreferences merges the submitted fields into the stored record.
// Onboarding is incremental: omitted fields stay untouched, submitted slices
// replace the stored slice wholesale.
func (u *userUsecase) UpdatePreferences(ctx context.Context, userID string, update domain.PreferencesUpdate) (domain.UserPreferences, error) {
	if userID == "" {
		return domain.UserPreferences{}, apperror.Unauthorized("User not authenticated")
	}

	if err := u.validate.Struct(update); err != nil {
		return domain.UserPreferences{}, apperror.BadRequest(err.Error())
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// First onboarding step for a fresh account
		user = &domain.User{ID: userID, Preferences: domain.DefaultPreferences()}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return domain.UserPreferences{}, apperror.Unavailable(err)
		}
	} else if err != nil {
		return domain.UserPreferences{}, apperror.Unavailable(err)
	}

	prefs := mergePreferences(user.Preferences, update)
	if err := u.userRepo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return domain.UserPreferences{}, apperror.Unavailable(err)
	}
	return prefs, nil
}

func mergePreferences(prefs domain.UserPreferences, update domain.PreferencesUpdate) domain.UserPreferences {
	if update.RemoteOnly != nil {
		prefs.RemoteOnly = update.RemoteOnly
	}
	if update.VisaSponsorshipRequired != nil {
		prefs.VisaSponsorshipRequired = update.VisaSponsorshipRequired
	}
	if update.PreferredLocations != nil {
		prefs.PreferredLocations = update.PreferredLocations
	}
	if update.SalaryRange != nil {
		prefs.SalaryRange = update.SalaryRange
	}
	if update.JobTypes != nil {
		prefs.JobTypes = update.JobTypes
	}
	if update.Skills != nil {
		prefs.Skills = update.Skills
	}
	if update.ExperienceLevel != nil {
		prefs.ExperienceLevel = update.ExperienceLevel
	}
	if update.OtherRelevance != nil {
		prefs.OtherRelevance = update.OtherRelevance
	}
	if update.GraduationYear != nil {
		prefs.GraduationYear = update.GraduationYear
	}
	if update.Major != nil {
		prefs.Major = update.Major
	}
	if update.StudentStatus != nil {
		prefs.StudentStatus = update.StudentStatus
	}
	if update.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = update.NotificationsEnabled
	}
	return prefs
}
