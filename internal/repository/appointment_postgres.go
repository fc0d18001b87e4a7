package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

const appointmentColumns = `
	a.id, a.client_name, a.client_phone,
	to_char(a.appointment_date, 'YYYY-MM-DD'), to_char(a.appointment_time, 'HH24:MI'),
	a.status, a.payment_method, a.price::float8, a.service_description,
	a.duration_minutes, a.buffer_minutes, to_char(a.actual_end_time, 'HH24:MI'),
	ARRAY(SELECT s.service_id FROM appointment_services s WHERE s.appointment_id = a.id ORDER BY s.service_id),
	a.created_at, a.updated_at
`

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.ClientName,
		&a.ClientPhone,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Status,
		&a.PaymentMethod,
		&a.Price,
		&a.ServiceDescription,
		&a.DurationMinutes,
		&a.BufferMinutes,
		&a.ActualEndTime,
		&a.ServiceIDs,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func listAppointments(ctx context.Context, q querier, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке списка записей: %w", err)
	}

	return appointments, nil
}

const occupyingQuery = `SELECT ` + appointmentColumns + ` FROM appointments a
	WHERE a.appointment_date = $1::date AND a.status <> 'cancelled'
	ORDER BY a.appointment_time`

func (r *AppointmentRepo) CreateChecked(ctx context.Context, appointment domain.Appointment, check func(DayState) error) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes bookings of the same date across connections until commit.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "appointments:"+appointment.AppointmentDate); err != nil {
		return 0, fmt.Errorf("ошибка блокировки дня: %w", err)
	}

	var state DayState
	state.Appointments, err = listAppointments(ctx, tx, occupyingQuery, appointment.AppointmentDate)
	if err != nil {
		return 0, err
	}
	state.Blocks, err = listBlockedSlots(ctx, tx,
		`SELECT `+blockedSlotColumns+` FROM blocked_slots WHERE blocked_date = $1::date`, appointment.AppointmentDate)
	if err != nil {
		return 0, err
	}

	if err := check(state); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO appointments (
			client_name, client_phone, appointment_date, appointment_time, status, payment_method,
			price, service_description, duration_minutes, buffer_minutes
		) VALUES ($1, $2, $3::date, $4::time, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		appointment.ClientName,
		appointment.ClientPhone,
		appointment.AppointmentDate,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.PaymentMethod,
		appointment.Price,
		appointment.ServiceDescription,
		appointment.DurationMinutes,
		appointment.BufferMinutes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания записи: %w", err)
	}

	if err := insertAppointmentServices(ctx, tx, id, appointment.ServiceIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return id, nil
}

func insertAppointmentServices(ctx context.Context, tx pgx.Tx, appointmentID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO appointment_services (appointment_id, service_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, appointmentID, serviceIDs)
	if err != nil {
		return fmt.Errorf("ошибка сохранения услуг записи: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return a, nil
}

func appointmentConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.Date != nil {
		conditions += fmt.Sprintf(" AND a.appointment_date = $%d::date", argPos)
		args = append(args, *filter.Date)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND a.appointment_date >= $%d::date", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND a.appointment_date <= $%d::date", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND a.status = $%d", argPos)
		args = append(args, *filter.Status)
	}

	return conditions, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args := appointmentConditions(filter)

	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE 1=1` + conditions +
		` ORDER BY a.appointment_date DESC, a.appointment_time`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	return listAppointments(ctx, r.db, query, args...)
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions, args := appointmentConditions(filter)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments a WHERE 1=1`+conditions, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	return total, nil
}

func (r *AppointmentRepo) ListOccupying(ctx context.Context, date string) ([]domain.Appointment, error) {
	return listAppointments(ctx, r.db, occupyingQuery, date)
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actualEndTime *string) error {
	query := `
		UPDATE appointments
		SET status = $1, actual_end_time = $2::time, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, status, actualEndTime, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) UpdateItems(ctx context.Context, appointment domain.Appointment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET price = $1, service_description = $2, duration_minutes = $3, buffer_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`,
		appointment.Price,
		appointment.ServiceDescription,
		appointment.DurationMinutes,
		appointment.BufferMinutes,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуг записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, appointment.ID); err != nil {
		return fmt.Errorf("ошибка очистки услуг записи: %w", err)
	}

	if err := insertAppointmentServices(ctx, tx, appointment.ID, appointment.ServiceIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) Stats(ctx context.Context, today string) (*domain.AppointmentStats, error) {
	query := `
		SELECT
			COALESCE(SUM(price) FILTER (WHERE appointment_date = $1::date), 0)::float8,
			COUNT(*) FILTER (WHERE appointment_date = $1::date),
			COALESCE(SUM(price) FILTER (WHERE date_trunc('month', appointment_date) = date_trunc('month', $1::date)), 0)::float8,
			COALESCE(SUM(price), 0)::float8
		FROM appointments
		WHERE status <> 'cancelled'
	`

	var stats domain.AppointmentStats
	err := r.db.QueryRow(ctx, query, today).Scan(
		&stats.TodayTotal,
		&stats.TodayCount,
		&stats.MonthTotal,
		&stats.OverallTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики: %w", err)
	}

	return &stats, nil
}
