package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

const blockedSlotColumns = `
	id, to_char(blocked_date, 'YYYY-MM-DD'), to_char(blocked_time, 'HH24:MI'), full_day, reason, created_at
`

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type BlockedSlotRepo struct {
	db *pgxpool.Pool
}

func NewBlockedSlotRepository(db *pgxpool.Pool) *BlockedSlotRepo {
	return &BlockedSlotRepo{db: db}
}

func (r *BlockedSlotRepo) Create(ctx context.Context, slot domain.BlockedSlot) (int64, error) {
	query := `
		INSERT INTO blocked_slots (blocked_date, blocked_time, full_day, reason)
		VALUES ($1::date, $2::time, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, slot.BlockedDate, slot.BlockedTime, slot.FullDay, slot.Reason).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания блокировки: %w", err)
	}

	return id, nil
}

func (r *BlockedSlotRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blocked_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления блокировки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *BlockedSlotRepo) ListByDate(ctx context.Context, date string) ([]domain.BlockedSlot, error) {
	return listBlockedSlots(ctx, r.db,
		`SELECT `+blockedSlotColumns+` FROM blocked_slots WHERE blocked_date = $1::date ORDER BY blocked_time NULLS FIRST`, date)
}

func (r *BlockedSlotRepo) ListBetween(ctx context.Context, from, to string) ([]domain.BlockedSlot, error) {
	return listBlockedSlots(ctx, r.db,
		`SELECT `+blockedSlotColumns+` FROM blocked_slots
		 WHERE blocked_date BETWEEN $1::date AND $2::date
		 ORDER BY blocked_date, blocked_time NULLS FIRST`, from, to)
}

func (r *BlockedSlotRepo) ListFrom(ctx context.Context, from string) ([]domain.BlockedSlot, error) {
	return listBlockedSlots(ctx, r.db,
		`SELECT `+blockedSlotColumns+` FROM blocked_slots
		 WHERE blocked_date >= $1::date
		 ORDER BY blocked_date, blocked_time NULLS FIRST`, from)
}

func (r *BlockedSlotRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM blocked_slots WHERE blocked_date < $1::date`, date)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления устаревших блокировок: %w", err)
	}

	return tag.RowsAffected(), nil
}

func listBlockedSlots(ctx context.Context, q querier, query string, args ...interface{}) ([]domain.BlockedSlot, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения блокировок: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.BlockedSlot, 0)
	for rows.Next() {
		var s domain.BlockedSlot
		if err := rows.Scan(&s.ID, &s.BlockedDate, &s.BlockedTime, &s.FullDay, &s.Reason, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования блокировки: %w", err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке блокировок: %w", err)
	}

	return slots, nil
}
