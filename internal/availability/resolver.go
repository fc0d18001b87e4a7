// Package availability computes the bookable start times of a shop day.
//
// Everything here is a pure function of its inputs: the caller loads the day's
// schedule, blocks and appointments and passes the current time explicitly.
// The result is a snapshot, not a reservation; booking writes must re-check
// availability under their own lock.
package availability

import (
	"time"

	"barbershop/internal/domain"
)

// Request is one availability query for a single date.
type Request struct {
	Date            time.Time
	Services        []domain.Service
	Schedule        *domain.DaySchedule
	Appointments    []domain.Appointment
	Blocks          []domain.BlockedSlot
	IntervalMinutes int
	// Now is the shop-local current time. Zero disables the past-slot rule.
	Now time.Time
	// BufferInBreak extends the break check with the selection's buffer.
	BufferInBreak bool
}

type Slot struct {
	Time      string `json:"time"`
	Minute    int    `json:"-"`
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
}

// Totals returns the summed duration and the largest buffer of the selection.
func Totals(services []domain.Service) (duration, buffer int) {
	for _, s := range services {
		duration += s.DurationMinutes
		buffer = max(buffer, s.BufferMinutes)
	}
	return duration, buffer
}

// Resolve lists every grid slot of req.Date in ascending order with its availability.
// A closed or unconfigured weekday yields an empty list.
func Resolve(req Request) ([]Slot, error) {
	if len(req.Services) == 0 {
		return nil, ErrNoServices
	}

	if req.IntervalMinutes <= 0 {
		return nil, &ConfigError{Field: "slot_interval_minutes", Reason: "интервал должен быть положительным"}
	}

	if req.Schedule == nil || !req.Schedule.IsOpen {
		return []Slot{}, nil
	}

	openMin, closeMin, err := openingHours(req.Schedule)
	if err != nil {
		return nil, err
	}

	grid, err := GenerateSlots(openMin, closeMin, req.IntervalMinutes)
	if err != nil {
		return nil, err
	}

	day, err := newDayConstraints(req, closeMin)
	if err != nil {
		return nil, err
	}

	duration, buffer := Totals(req.Services)

	slots := make([]Slot, 0, len(grid))
	for _, s := range grid {
		reason := day.check(s, duration, buffer, req.BufferInBreak)
		slots = append(slots, Slot{
			Time:      FormatMinutes(s),
			Minute:    s,
			Available: reason == ReasonNone,
			Reason:    reason,
		})
	}

	return slots, nil
}

// Available returns only the open slots of a resolved list.
func Available(slots []Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

// FitsInDay reports whether a selection of the given total duration can be served
// at all on a weekday: the day is open and the duration fits between open and close.
func FitsInDay(schedule *domain.DaySchedule, duration int) (bool, error) {
	if schedule == nil || !schedule.IsOpen {
		return false, nil
	}

	openMin, closeMin, err := openingHours(schedule)
	if err != nil {
		return false, err
	}

	return openMin < closeMin && FitsBeforeClose(openMin, duration, closeMin), nil
}

func openingHours(schedule *domain.DaySchedule) (int, int, error) {
	openMin, err := ToMinutes(schedule.OpenTime)
	if err != nil {
		return 0, 0, &ConfigError{Field: "open_time", Reason: "некорректное значение", Err: err}
	}
	closeMin, err := ToMinutes(schedule.CloseTime)
	if err != nil {
		return 0, 0, &ConfigError{Field: "close_time", Reason: "некорректное значение", Err: err}
	}
	return openMin, closeMin, nil
}
