package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

const serviceColumns = `id, name, price::float8, duration_minutes, buffer_minutes, active, sort_order, created_at`

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Price,
		&s.DurationMinutes,
		&s.BufferMinutes,
		&s.Active,
		&s.SortOrder,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) Create(ctx context.Context, service domain.Service) (int64, error) {
	query := `
		INSERT INTO services (name, price, duration_minutes, buffer_minutes, active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		service.Name,
		service.Price,
		service.DurationMinutes,
		service.BufferMinutes,
		service.Active,
		service.SortOrder,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	return s, nil
}

func (r *ServiceRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1) ORDER BY sort_order, id`

	return r.query(ctx, query, ids)
}

func (r *ServiceRepo) Update(ctx context.Context, service domain.Service) error {
	query := `
		UPDATE services
		SET name = $1, price = $2, duration_minutes = $3, buffer_minutes = $4, active = $5, sort_order = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		service.Name,
		service.Price,
		service.DurationMinutes,
		service.BufferMinutes,
		service.Active,
		service.SortOrder,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context, onlyActive bool) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order, id`

	return r.query(ctx, query)
}

func (r *ServiceRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования услуги: %w", err)
		}
		services = append(services, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке списка услуг: %w", err)
	}

	return services, nil
}
