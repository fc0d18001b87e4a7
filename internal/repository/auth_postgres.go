package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

const sessionColumns = `id::text, user_id, refresh_token, user_agent, ip, expires_at, created_at`

type AuthRepo struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token, user_agent, ip, expires_at, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
	`, s.ID, s.UserID, s.RefreshToken, s.UserAgent, s.IP, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return nil
}

// ConsumeSession deletes the session owning refreshToken and returns it, so a
// refresh token can be redeemed at most once even under concurrent requests.
func (r *AuthRepo) ConsumeSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRow(ctx,
		`DELETE FROM sessions WHERE refresh_token = $1 RETURNING `+sessionColumns, refreshToken,
	).Scan(&s.ID, &s.UserID, &s.RefreshToken, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сессии: %w", err)
	}

	return &s, nil
}

func (r *AuthRepo) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка удаления сессий пользователя: %w", err)
	}

	return nil
}

func (r *AuthRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления истекших сессий: %w", err)
	}

	return tag.RowsAffected(), nil
}
