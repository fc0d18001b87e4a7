package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusFinished, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusFinished, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusFinished, AppointmentStatusConfirmed, true},
		{AppointmentStatusFinished, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestAppointmentStatus_OccupiesCalendar(t *testing.T) {
	assert.True(t, AppointmentStatusPending.OccupiesCalendar())
	assert.True(t, AppointmentStatusFinished.OccupiesCalendar())
	assert.False(t, AppointmentStatusCancelled.OccupiesCalendar())
	assert.True(t, AppointmentStatusCancelled.IsValid())
	assert.False(t, AppointmentStatus("no_show").IsValid())
}

func TestBlockedSlot_CoversWholeDay(t *testing.T) {
	at := "14:00"
	assert.True(t, BlockedSlot{FullDay: true, BlockedTime: &at}.CoversWholeDay())
	assert.True(t, BlockedSlot{}.CoversWholeDay())
	assert.False(t, BlockedSlot{BlockedTime: &at}.CoversWholeDay())
}

func TestImageKind_SettingKey(t *testing.T) {
	key, ok := ImageKindLogo.SettingKey()
	assert.True(t, ok)
	assert.Equal(t, SettingLogoImage, key)

	_, ok = ImageKind("favicon").SettingKey()
	assert.False(t, ok)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.False(t, Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.True(t, UserRoleSuperAdmin.CanManageShop())
	assert.False(t, UserRole("client").CanManageShop())
}
