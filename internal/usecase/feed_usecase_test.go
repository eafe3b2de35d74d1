package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/ledger"
	"internmatch-backend/internal/repository/postgres"
	"internmatch-backend/internal/repository/redisstore"
	"internmatch-backend/internal/usecase"
	"internmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFeedFixture() (*MockJobRepo, *MockUserRepo, *MockSavedJobUC, *ledger.Ledger, domain.FeedUsecase) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedUC := new(MockSavedJobUC)
	seen := ledger.New(redisstore.NewMemSeenStore())
	uc := usecase.NewFeedUsecase(jobRepo, userRepo, savedUC, seen, 10)
	return jobRepo, userRepo, savedUC, seen, uc
}

func TestNextBatchExcludesSeenAndSaved(t *testing.T) {
	jobRepo, userRepo, savedUC, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{UserID: "u1"}

	assert.NoError(t, seen.MarkSeen(ctx, "u1", "j1"))
	savedUC.On("ListJobIDs", mock.Anything, "u1").Return([]string{"j2"}, nil)
	userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", 10).Return(&domain.JobPage{
		Jobs: []domain.Job{{ID: "j1"}, {ID: "j2"}, {ID: "j3"}},
	}, nil)

	batch, err := uc.NextBatch(ctx, subject, domain.JobFilters{}, "")
	assert.NoError(t, err)
	assert.Len(t, batch.Jobs, 1)
	assert.Equal(t, "j3", batch.Jobs[0].Job.ID)
	assert.Equal(t, 80, batch.Jobs[0].MatchScore)
	assert.False(t, batch.Exhausted)
}

func TestNextBatchReportsExhaustion(t *testing.T) {
	jobRepo, _, _, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{DeviceID: "device-1"}

	assert.NoError(t, seen.MarkSeen(ctx, "device-1", "j1"))
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", 10).Return(&domain.JobPage{
		Jobs: []domain.Job{{ID: "j1"}},
	}, nil)

	batch, err := uc.NextBatch(ctx, subject, domain.JobFilters{}, "")
	assert.NoError(t, err)
	assert.Empty(t, batch.Jobs)
	assert.True(t, batch.Exhausted)
}

func TestNextBatchKeepsPagingPastExcludedPages(t *testing.T) {
	jobRepo, _, _, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{DeviceID: "device-1"}

	assert.NoError(t, seen.MarkSeen(ctx, "device-1", "j1"))
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", 10).Return(&domain.JobPage{
		Jobs:   []domain.Job{{ID: "j1"}},
		Cursor: "page2",
	}, nil)
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "page2", 10).Return(&domain.JobPage{
		Jobs: []domain.Job{{ID: "j2"}},
	}, nil)

	batch, err := uc.NextBatch(ctx, subject, domain.JobFilters{}, "")
	assert.NoError(t, err)
	assert.Len(t, batch.Jobs, 1)
	assert.Equal(t, "j2", batch.Jobs[0].Job.ID)
}

func TestNextBatchHandsBackCursorWhenPageBudgetSpent(t *testing.T) {
	jobRepo, _, _, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{DeviceID: "device-1"}

	// Every store page holds only the one job the subject has already seen,
	// and the listing never runs out.
	assert.NoError(t, seen.MarkSeen(ctx, "device-1", "j1"))
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", 10).Return(&domain.JobPage{
		Jobs:   []domain.Job{{ID: "j1"}},
		Cursor: "p1",
	}, nil)
	for i := 1; i <= 20; i++ {
		jobRepo.On("List", mock.Anything, domain.JobFilters{}, fmt.Sprintf("p%d", i), 10).
			Return(&domain.JobPage{
				Jobs:   []domain.Job{{ID: "j1"}},
				Cursor: fmt.Sprintf("p%d", i+1),
			}, nil).Maybe()
	}

	batch, err := uc.NextBatch(ctx, subject, domain.JobFilters{}, "")
	assert.NoError(t, err)
	// The page budget stops the walk; an empty batch with a cursor and no
	// exhaustion flag tells the caller to keep paging from where it left off.
	assert.Empty(t, batch.Jobs)
	assert.False(t, batch.Exhausted)
	assert.Equal(t, "p20", batch.Cursor)
}

func TestNextBatchRejectsStaleCursor(t *testing.T) {
	jobRepo, _, _, _, uc := newFeedFixture()
	subject := domain.Subject{DeviceID: "device-1"}

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "stale", 10).
		Return(nil, postgres.ErrInvalidCursor)

	_, err := uc.NextBatch(context.Background(), subject, domain.JobFilters{}, "stale")
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestNextBatchSurvivesSavedListFailure(t *testing.T) {
	jobRepo, userRepo, savedUC, _, uc := newFeedFixture()
	subject := domain.Subject{UserID: "u1"}

	savedUC.On("ListJobIDs", mock.Anything, "u1").Return(nil, errors.New("store down"))
	userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", 10).Return(&domain.JobPage{
		Jobs: []domain.Job{{ID: "j1"}},
	}, nil)

	batch, err := uc.NextBatch(context.Background(), subject, domain.JobFilters{}, "")
	assert.NoError(t, err)
	assert.Len(t, batch.Jobs, 1)
}

func TestSwipeLeftMarksSeen(t *testing.T) {
	_, _, _, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{DeviceID: "device-1"}

	assert.NoError(t, uc.SwipeLeft(ctx, subject, "j1"))

	ids, err := seen.GetSeen(ctx, "device-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"j1"}, ids)
}

func TestSwipeRightRequiresAccount(t *testing.T) {
	_, _, _, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{DeviceID: "device-1"}

	err := uc.SwipeRight(ctx, subject, "j1")
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)

	// Nothing marked seen: the undecided card may come back
	ids, _ := seen.GetSeen(ctx, "device-1")
	assert.Empty(t, ids)
}

func TestSwipeRightMarksSeenThenSaves(t *testing.T) {
	_, _, savedUC, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{UserID: "u1"}

	savedUC.On("Save", mock.Anything, "u1", "j1", "").Return("saved-id", nil)

	assert.NoError(t, uc.SwipeRight(ctx, subject, "j1"))

	ids, err := seen.GetSeen(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"j1"}, ids)
	savedUC.AssertExpectations(t)
}

func TestSwipeRightKeepsSeenMarkWhenSaveFails(t *testing.T) {
	_, _, savedUC, seen, uc := newFeedFixture()
	ctx := context.Background()
	subject := domain.Subject{UserID: "u1"}

	savedUC.On("Save", mock.Anything, "u1", "j1", "").
		Return("", apperror.Unavailable(errors.New("store down")))

	err := uc.SwipeRight(ctx, subject, "j1")
	assert.Error(t, err)

	// The decision was made; the card must not resurface
	ids, _ := seen.GetSeen(ctx, "u1")
	assert.Equal(t, []string{"j1"}, ids)
}
