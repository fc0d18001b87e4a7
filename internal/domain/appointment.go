package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusFinished  AppointmentStatus = "finished"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// OccupiesCalendar reports whether an appointment in this status blocks its time window.
func (s AppointmentStatus) OccupiesCalendar() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusFinished:
		return true
	}
	return false
}

func (s AppointmentStatus) IsValid() bool {
	return s.OccupiesCalendar() || s == AppointmentStatusCancelled
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusFinished, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusFinished, AppointmentStatusCancelled},
	AppointmentStatusFinished:  {AppointmentStatusConfirmed},
}

// CanTransition reports whether the admin may move an appointment from one status to another.
// Finished can only be reverted to confirmed; cancelled is terminal.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCash PaymentMethod = "cash"
)

type Appointment struct {
	ID                 int64             `json:"id"`
	ClientName         string            `json:"client_name"`
	ClientPhone        string            `json:"client_phone"`
	AppointmentDate    string            `json:"appointment_date"`
	AppointmentTime    string            `json:"appointment_time"`
	Status             AppointmentStatus `json:"status"`
	PaymentMethod      PaymentMethod     `json:"payment_method"`
	Price              float64           `json:"price"`
	ServiceDescription string            `json:"service_description"`
	DurationMinutes    int               `json:"duration_minutes"`
	BufferMinutes      int               `json:"buffer_minutes"`
	ActualEndTime      *string           `json:"actual_end_time,omitempty"`
	ServiceIDs         []int64           `json:"service_ids"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type CreateBookingDTO struct {
	ClientName    string        `json:"client_name" binding:"required"`
	ClientPhone   string        `json:"client_phone" binding:"required"`
	Date          string        `json:"date" binding:"required"`
	Time          string        `json:"time" binding:"required"`
	ServiceIDs    []int64       `json:"service_ids" binding:"required,min=1"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=pix cash"`
}

type BookingResult struct {
	Appointment  *Appointment `json:"appointment"`
	WhatsAppLink string       `json:"whatsapp_link"`
}

type UpdateStatusDTO struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed finished cancelled"`
}

type CustomItem struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

type UpdateItemsDTO struct {
	ServiceIDs  []int64      `json:"service_ids"`
	CustomItems []CustomItem `json:"custom_items" binding:"dive"`
}

type AppointmentFilter struct {
	Date      *string            `json:"date"`
	StartDate *string            `json:"start_date"`
	EndDate   *string            `json:"end_date"`
	Status    *AppointmentStatus `json:"status"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type AppointmentStats struct {
	TodayTotal   float64 `json:"today_total"`
	TodayCount   int     `json:"today_count"`
	MonthTotal   float64 `json:"month_total"`
	OverallTotal float64 `json:"overall_total"`
}
