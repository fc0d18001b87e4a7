package domain

// CalendarDay describes whether a date can be picked in the booking calendar.
type CalendarDay struct {
	Date       string `json:"date"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason,omitempty"`
}

const (
	CalendarReasonPast    = "past"
	CalendarReasonClosed  = "closed"
	CalendarReasonFullDay = "full_day"
	CalendarReasonTooLong = "too_long"
)
