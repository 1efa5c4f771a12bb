package appointments

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppointmentRepository_SlotUniqueness(t *testing.T) {
	f := newFixture(t, &stubLocker{acquired: true})
	repo := NewAppointmentPostgresRepository(f.db, zap.NewNop())
	ctx := context.Background()

	newAppointment := func(start, end string, status models.AppointmentStatus) *models.Appointment {
		return &models.Appointment{
			PatientID:       f.patientA.ProfileID,
			DoctorID:        f.doctor.ID,
			AppointmentDate: "2025-06-03",
			StartTime:       start,
			EndTime:         end,
			Type:            models.AppointmentTypeOffline,
			Status:          status,
		}
	}

	held := newAppointment("08:00", "08:30", models.AppointmentStatusConfirmed)
	require.NoError(t, repo.Create(ctx, held))

	t.Run("Second live row on the same key conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newAppointment("08:00", "08:30", models.AppointmentStatusPending))
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeConflict))
	})

	t.Run("Cancelled rows do not hold the key", func(t *testing.T) {
		cancelled := newAppointment("09:00", "09:30", models.AppointmentStatusCancelled)
		require.NoError(t, repo.Create(ctx, cancelled))

		live := newAppointment("09:00", "09:30", models.AppointmentStatusPending)
		assert.NoError(t, repo.Create(ctx, live))
	})

	t.Run("Rescheduling onto a held key conflicts", func(t *testing.T) {
		moving := newAppointment("09:30", "10:00", models.AppointmentStatusPending)
		require.NoError(t, repo.Create(ctx, moving))

		rows, err := repo.UpdateFields(ctx, moving.ID, map[string]interface{}{
			"start_time": "08:00",
			"end_time":   "08:30",
		})
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeConflict))
		assert.Zero(t, rows)

		stored, err := repo.FindByID(ctx, moving.ID)
		require.NoError(t, err)
		assert.Equal(t, "09:30", stored.StartTime)
	})

	t.Run("Cancelling frees the key for a reschedule", func(t *testing.T) {
		rows, err := repo.TransitionStatus(ctx, held.ID, activeAppointmentStatuses, models.AppointmentStatusCancelled, nil)
		require.NoError(t, err)
		require.Equal(t, int64(1), rows)

		moving := newAppointment("10:00", "10:30", models.AppointmentStatusPending)
		require.NoError(t, repo.Create(ctx, moving))
		rows, err = repo.UpdateFields(ctx, moving.ID, map[string]interface{}{
			"start_time": "08:00",
			"end_time":   "08:30",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})
}
