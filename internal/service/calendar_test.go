package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TidyElephant/internal/model/dto"
	pkgerrors "TidyElephant/pkg/errors"
)

func TestValidateWeekly(t *testing.T) {
	valid := []dto.WeekdaySelection{
		{Day: "Monday", Available: true, StartTime: "09:00", EndTime: "17:00"},
		{Day: "Sunday", Available: false},
	}

	out, err := validateWeekly(valid)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Available)
	assert.False(t, out[1].Available)

	tests := []struct {
		name   string
		weekly []dto.WeekdaySelection
	}{
		{
			name:   "no available days",
			weekly: []dto.WeekdaySelection{{Day: "Monday", Available: false}},
		},
		{
			name:   "unknown day name",
			weekly: []dto.WeekdaySelection{{Day: "Moonday", Available: true, StartTime: "09:00", EndTime: "17:00"}},
		},
		{
			name:   "missing start time",
			weekly: []dto.WeekdaySelection{{Day: "Monday", Available: true, EndTime: "17:00"}},
		},
		{
			name:   "start after end",
			weekly: []dto.WeekdaySelection{{Day: "Monday", Available: true, StartTime: "18:00", EndTime: "09:00"}},
		},
		{
			name:   "zero length window",
			weekly: []dto.WeekdaySelection{{Day: "Monday", Available: true, StartTime: "09:00", EndTime: "09:00"}},
		},
		{
			name:   "empty submission",
			weekly: []dto.WeekdaySelection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateWeekly(tt.weekly)
			assert.Equal(t, pkgerrors.InvalidAvailability, err)
		})
	}
}
