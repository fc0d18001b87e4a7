package availability

import (
	"time"

	"barbershop/internal/domain"
)

// Reason explains why a slot is not available. Empty for available slots.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonFullDay    Reason = "full_day"
	ReasonPast       Reason = "past"
	ReasonAfterClose Reason = "after_close"
	ReasonBreak      Reason = "break"
	ReasonBlocked    Reason = "blocked"
	ReasonBooked     Reason = "booked"
)

type window struct {
	start, end int
}

// dayConstraints is the parsed view of one day's schedule, blocks and bookings.
type dayConstraints struct {
	closeMin int
	fullDay  bool
	pastDay  bool
	nowMin   int
	isToday  bool

	hasBreak bool
	rest     window

	blocked map[int]struct{}
	booked  []window
}

func newDayConstraints(req Request, closeMin int) (*dayConstraints, error) {
	d := &dayConstraints{
		closeMin: closeMin,
		blocked:  make(map[int]struct{}),
	}

	if !req.Now.IsZero() {
		switch compareDates(req.Date, req.Now) {
		case -1:
			d.pastDay = true
		case 0:
			d.isToday = true
			d.nowMin = req.Now.Hour()*60 + req.Now.Minute()
		}
	}

	if err := d.loadBreak(req.Schedule); err != nil {
		return nil, err
	}

	for _, b := range req.Blocks {
		if b.CoversWholeDay() {
			d.fullDay = true
			continue
		}
		m, err := ToMinutes(*b.BlockedTime)
		if err != nil {
			return nil, err
		}
		d.blocked[m] = struct{}{}
	}

	for _, a := range req.Appointments {
		if !a.Status.OccupiesCalendar() {
			continue
		}
		w, err := occupiedWindow(a)
		if err != nil {
			return nil, err
		}
		if w.end > w.start {
			d.booked = append(d.booked, w)
		}
	}

	return d, nil
}

func (d *dayConstraints) loadBreak(schedule *domain.DaySchedule) error {
	if schedule.BreakStart == nil && schedule.BreakEnd == nil {
		return nil
	}
	if schedule.BreakStart == nil || schedule.BreakEnd == nil {
		return &ConfigError{Field: "break", Reason: "указано только одно из break_start/break_end"}
	}

	start, err := ToMinutes(*schedule.BreakStart)
	if err != nil {
		return &ConfigError{Field: "break_start", Reason: "некорректное значение", Err: err}
	}
	end, err := ToMinutes(*schedule.BreakEnd)
	if err != nil {
		return &ConfigError{Field: "break_end", Reason: "некорректное значение", Err: err}
	}
	if start >= end {
		return &ConfigError{Field: "break", Reason: "начало перерыва должно быть раньше конца"}
	}

	d.hasBreak = true
	d.rest = window{start: start, end: end}
	return nil
}

// occupiedWindow is [start, actual_end) for early finishes, otherwise [start, start+duration+buffer).
func occupiedWindow(a domain.Appointment) (window, error) {
	start, err := ToMinutes(a.AppointmentTime)
	if err != nil {
		return window{}, err
	}

	if a.ActualEndTime != nil {
		end, err := ToMinutes(*a.ActualEndTime)
		if err != nil {
			return window{}, err
		}
		return window{start: start, end: end}, nil
	}

	return window{start: start, end: start + a.DurationMinutes + a.BufferMinutes}, nil
}

// check evaluates the exclusion rules in a fixed order and returns the first that matches.
func (d *dayConstraints) check(s, duration, buffer int, bufferInBreak bool) Reason {
	if d.fullDay {
		return ReasonFullDay
	}
	if d.pastDay || (d.isToday && s <= d.nowMin) {
		return ReasonPast
	}
	if !FitsBeforeClose(s, duration, d.closeMin) {
		return ReasonAfterClose
	}
	if d.hasBreak {
		end := s + duration
		if bufferInBreak {
			end += buffer
		}
		if IntervalsOverlap(s, end, d.rest.start, d.rest.end) {
			return ReasonBreak
		}
	}
	if _, ok := d.blocked[s]; ok {
		return ReasonBlocked
	}
	for _, w := range d.booked {
		if IntervalsOverlap(s, s+duration+buffer, w.start, w.end) {
			return ReasonBooked
		}
	}
	return ReasonNone
}

// FitsBeforeClose reports whether a service of the given duration starting at start ends by closeMin.
func FitsBeforeClose(start, duration, closeMin int) bool {
	return start+duration <= closeMin
}

// compareDates compares the calendar dates of a and b, each read in its own location.
func compareDates(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	switch {
	case da.Before(db):
		return -1
	case da.After(db):
		return 1
	}
	return 0
}
