package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/repository/postgres"
	"internmatch-backend/pkg/apperror"
)

const newsPageSize = 20

type newsUsecase struct {
	newsRepo domain.NewsRepository
}

func NewNewsUsecase(newsRepo domain.NewsRepository) domain.NewsUsecase {
	return &newsUsecase{newsRepo: newsRepo}
}

func (u *newsUsecase) List(ctx context.Context, cursor string) (*domain.NewsPage, error) {
	page, err := u.newsRepo.List(ctx, cursor, newsPageSize)
	if errors.Is(err, postgres.ErrInvalidCursor) {
		return nil, apperror.BadRequest("Invalid cursor; restart paging from the beginning")
	}
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	return page, nil
}
