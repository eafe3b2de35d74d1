package postgres

import (
	"context"
	"errors"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

// NewSavedJobRepository creates a new saved-job repository
func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

// Create inserts a saved-job row. The table carries a unique index on
// (user_id, job_id); ON CONFLICT DO NOTHING keeps the operation idempotent
// even if two save calls race past the usecase's existence check.
func (r *savedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now()
	}

	query := `
		INSERT INTO saved_jobs (id, user_id, job_id, saved_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, job_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query, saved.ID, saved.UserID, saved.JobID, saved.SavedAt, saved.Notes)
	return err
}

func (r *savedJobRepo) GetByUserAndJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	query := `
		SELECT id, user_id, job_id, saved_at, notes
		FROM saved_jobs
		WHERE user_id = $1 AND job_id = $2`

	var saved domain.SavedJob
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(
		&saved.ID, &saved.UserID, &saved.JobID, &saved.SavedAt, &saved.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *savedJobRepo) DeleteByUserAndJob(ctx context.Context, userID, jobID string) error {
	query := `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	_, err := r.db.Exec(ctx, query, userID, jobID)
	return err
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	query := `
		SELECT id, user_id, job_id, saved_at, notes
		FROM saved_jobs
		WHERE user_id = $1
		ORDER BY saved_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var savedJobs []domain.SavedJob
	for rows.Next() {
		var saved domain.SavedJob
		if err := rows.Scan(&saved.ID, &saved.UserID, &saved.JobID, &saved.SavedAt, &saved.Notes); err != nil {
			return nil, err
		}
		savedJobs = append(savedJobs, saved)
	}
	return savedJobs, rows.Err()
}

func (r *savedJobRepo) ListJobIDsByUser(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT job_id FROM saved_jobs WHERE user_id = $1 ORDER BY saved_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
