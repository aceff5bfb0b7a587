package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	booked := &Appointment{Status: StatusBooked}

	assert.True(t, booked.CanTransitionTo(StatusCancelled))
	assert.True(t, booked.CanTransitionTo(StatusCompleted))
	assert.True(t, booked.CanTransitionTo(StatusMissed))
	assert.False(t, booked.CanTransitionTo(StatusBooked))
	assert.False(t, booked.CanTransitionTo("Unknown"))

	// Финальные статусы никуда не переходят
	for _, from := range TerminalStatuses {
		appt := &Appointment{Status: from}
		for _, to := range []AppointmentStatus{StatusBooked, StatusCancelled, StatusCompleted, StatusMissed} {
			assert.False(t, appt.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusBooked))
	assert.True(t, ValidStatus(StatusMissed))
	assert.False(t, ValidStatus("Pending"))
	assert.False(t, ValidStatus(""))
}

func TestValidServiceType(t *testing.T) {
	assert.True(t, ValidServiceType(ServiceClinic))
	assert.True(t, ValidServiceType(ServiceHospital))
	assert.False(t, ValidServiceType("garage"))
	assert.False(t, ValidServiceType(""))
}
