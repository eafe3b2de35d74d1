package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now()
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}

	var offerDetails []byte
	if app.OfferDetails != nil {
		var err error
		offerDetails, err = json.Marshal(app.OfferDetails)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO applications (id, user_id, job_id, status, applied_at, notes, interview_date, offer_details, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.UserID, app.JobID, app.Status, app.AppliedAt,
		app.Notes, app.InterviewDate, offerDetails, app.UpdatedAt,
	)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT id, user_id, job_id, status, applied_at, notes, interview_date, offer_details, updated_at
		FROM applications
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `
		SELECT id, user_id, job_id, status, applied_at, notes, interview_date, offer_details, updated_at
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

// Exists checks if an application already exists for the user/job combination
func (r *applicationRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var offerDetails []byte
	if err := row.Scan(
		&app.ID, &app.UserID, &app.JobID, &app.Status, &app.AppliedAt,
		&app.Notes, &app.InterviewDate, &offerDetails, &app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(offerDetails) > 0 {
		var details domain.OfferDetails
		if err := json.Unmarshal(offerDetails, &details); err != nil {
			return nil, err
		}
		app.OfferDetails = &details
	}
	return &app, nil
}
