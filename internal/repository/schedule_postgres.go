package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

const scheduleColumns = `
	id, day_of_week, is_open,
	to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI'),
	to_char(break_start, 'HH24:MI'), to_char(break_end, 'HH24:MI')
`

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func scanDaySchedule(row pgx.Row) (*domain.DaySchedule, error) {
	var d domain.DaySchedule
	err := row.Scan(
		&d.ID,
		&d.DayOfWeek,
		&d.IsOpen,
		&d.OpenTime,
		&d.CloseTime,
		&d.BreakStart,
		&d.BreakEnd,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ScheduleRepo) List(ctx context.Context) ([]domain.DaySchedule, error) {
	rows, err := r.db.Query(ctx, `SELECT `+scheduleColumns+` FROM schedule_config ORDER BY day_of_week`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}
	defer rows.Close()

	days := make([]domain.DaySchedule, 0, 7)
	for rows.Next() {
		d, err := scanDaySchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки расписания: %w", err)
		}
		days = append(days, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке расписания: %w", err)
	}

	return days, nil
}

func (r *ScheduleRepo) GetByWeekday(ctx context.Context, weekday int) (*domain.DaySchedule, error) {
	d, err := scanDaySchedule(r.db.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM schedule_config WHERE day_of_week = $1`, weekday))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания дня: %w", err)
	}

	return d, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, day domain.DaySchedule) error {
	query := `
		INSERT INTO schedule_config (day_of_week, is_open, open_time, close_time, break_start, break_end)
		VALUES ($1, $2, $3::time, $4::time, $5::time, $6::time)
		ON CONFLICT (day_of_week) DO UPDATE
		SET is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end
	`

	_, err := r.db.Exec(ctx, query,
		day.DayOfWeek,
		day.IsOpen,
		day.OpenTime,
		day.CloseTime,
		day.BreakStart,
		day.BreakEnd,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления расписания: %w", err)
	}

	return nil
}
