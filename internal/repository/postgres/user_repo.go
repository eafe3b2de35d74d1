package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// Preferences are stored as jsonb: every field is optional and the set of
// onboarding questions changes more often than the schema should.

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, preferences, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user domain.User
	var prefs []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &prefs, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, email, name, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.Exec(ctx, query, user.ID, user.Email, user.Name, prefs, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *userRepo) UpdatePreferences(ctx context.Context, userID string, prefs domain.UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	query := `UPDATE users SET preferences = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, userID, data, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListNotifiable returns digest targets: users who opted into notifications.
func (r *userRepo) ListNotifiable(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT id, email, name, preferences, created_at, updated_at
		FROM users
		WHERE (preferences ->> 'notificationsEnabled')::boolean IS TRUE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var prefs []byte
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &prefs, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		if len(prefs) > 0 {
			if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
				return nil, err
			}
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
