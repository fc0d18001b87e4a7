package domain

import (
	"time"
)

// DaySchedule is the opening configuration of one weekday (0 = Sunday).
type DaySchedule struct {
	ID         int64   `json:"id"`
	DayOfWeek  int     `json:"day_of_week"`
	IsOpen     bool    `json:"is_open"`
	OpenTime   string  `json:"open_time"`
	CloseTime  string  `json:"close_time"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

type UpdateDayScheduleDTO struct {
	IsOpen     *bool   `json:"is_open"`
	OpenTime   *string `json:"open_time"`
	CloseTime  *string `json:"close_time"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
	ClearBreak bool    `json:"clear_break"`
}

type BlockedSlot struct {
	ID          int64     `json:"id"`
	BlockedDate string    `json:"blocked_date"`
	BlockedTime *string   `json:"blocked_time,omitempty"`
	FullDay     bool      `json:"full_day"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CoversWholeDay reports whether the block excludes every slot of its date.
// A row without a time is treated as a full-day block.
func (b BlockedSlot) CoversWholeDay() bool {
	return b.FullDay || b.BlockedTime == nil
}

type CreateBlockedSlotDTO struct {
	BlockedDate string  `json:"blocked_date" binding:"required"`
	BlockedTime *string `json:"blocked_time"`
	FullDay     bool    `json:"full_day"`
	Reason      *string `json:"reason"`
}
