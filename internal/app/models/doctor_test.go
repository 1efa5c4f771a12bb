package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTimeRange_Valid(t *testing.T) {
	tests := []struct {
		name  string
		r     TimeRange
		valid bool
	}{
		{"morning", TimeRange{Start: "08:00", End: "12:00"}, true},
		{"unpadded start", TimeRange{Start: "8:00", End: "12:00"}, false},
		{"unpadded end", TimeRange{Start: "08:00", End: "9:30"}, false},
		{"empty range", TimeRange{Start: "10:00", End: "10:00"}, false},
		{"reversed", TimeRange{Start: "12:00", End: "08:00"}, false},
		{"out of day", TimeRange{Start: "23:00", End: "24:00"}, false},
		{"missing end", TimeRange{Start: "08:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.r.Valid())
		})
	}
}

func TestDoctorSchedule(t *testing.T) {
	t.Run("Empty template", func(t *testing.T) {
		hours, err := (&Doctor{}).Schedule()
		require.NoError(t, err)
		assert.Empty(t, hours)
	})

	t.Run("Round trip", func(t *testing.T) {
		doctor := &Doctor{}
		require.NoError(t, doctor.SetSchedule(WorkingHours{"monday": {{Start: "08:00", End: "12:00"}}}))

		hours, err := doctor.Schedule()
		require.NoError(t, err)
		assert.Equal(t, []TimeRange{{Start: "08:00", End: "12:00"}}, hours["monday"])
	})

	t.Run("SetSchedule rejects unpadded clocks", func(t *testing.T) {
		doctor := &Doctor{}
		err := doctor.SetSchedule(WorkingHours{"monday": {{Start: "8:00", End: "12:00"}}})
		assert.Error(t, err)
		assert.Empty(t, doctor.WorkingHours)
	})

	t.Run("Stored template with an unpadded clock is rejected", func(t *testing.T) {
		// "8:00" sorts after "12:00" as a string
		doctor := &Doctor{WorkingHours: datatypes.JSON(`{"tuesday":[{"start":"8:00","end":"12:00"}]}`)}
		hours, err := doctor.Schedule()
		assert.Error(t, err)
		assert.Empty(t, hours.For(2))
	})
}
