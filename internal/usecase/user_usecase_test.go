package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/usecase"
	"internmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetPreferencesDefaultsForFreshUser(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, validator.New())

	userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	prefs, err := uc.GetPreferences(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestUpdatePreferencesMergesIncrementally(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, validator.New())

	stored := domain.UserPreferences{
		Skills:     []string{"Go"},
		RemoteOnly: boolP(true),
	}
	userRepo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Preferences: stored}, nil)
	userRepo.On("UpdatePreferences", mock.Anything, "u1", mock.MatchedBy(func(p domain.UserPreferences) bool {
		// The submitted field lands; untouched fields survive the merge
		return p.NotificationsEnabled != nil && *p.NotificationsEnabled &&
			len(p.Skills) == 1 && p.Skills[0] == "Go" &&
			p.RemoteOnly != nil && *p.RemoteOnly
	})).Return(nil)

	prefs, err := uc.UpdatePreferences(context.Background(), "u1", domain.PreferencesUpdate{
		NotificationsEnabled: boolP(true),
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Go"}, prefs.Skills)
	userRepo.AssertExpectations(t)
}

func TestUpdatePreferencesReplacesSlicesWholesale(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, validator.New())

	userRepo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Preferences: domain.UserPreferences{Skills: []string{"Go", "React"}}}, nil)
	userRepo.On("UpdatePreferences", mock.Anything, "u1", mock.Anything).Return(nil)

	prefs, err := uc.UpdatePreferences(context.Background(), "u1", domain.PreferencesUpdate{
		Skills: []string{"Python"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Python"}, prefs.Skills)
}

func TestUpdatePreferencesCreatesFreshAccount(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, validator.New())

	userRepo.On("GetByID", mock.Anything, "new-user").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "new-user"
	})).Return(nil)
	userRepo.On("UpdatePreferences", mock.Anything, "new-user", mock.Anything).Return(nil)

	prefs, err := uc.UpdatePreferences(context.Background(), "new-user", domain.PreferencesUpdate{
		RemoteOnly: boolP(true),
	})
	assert.NoError(t, err)
	assert.True(t, *prefs.RemoteOnly)
	userRepo.AssertExpectations(t)
}

func TestUpdatePreferencesValidatesEnums(t *testing.T) {
	uc := usecase.NewUserUsecase(new(MockUserRepo), validator.New())

	bogus := domain.ExperienceLevel("Wizard")
	_, err := uc.UpdatePreferences(context.Background(), "u1", domain.PreferencesUpdate{
		ExperienceLevel: &bogus,
	})
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
