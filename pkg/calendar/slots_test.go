package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSlots(t *testing.T) {
	weekly := []WeekdayInput{
		{Day: "Monday", Available: true, StartTime: "09:00", EndTime: "17:00"},
		{Day: "Tuesday", Available: false, StartTime: "09:00", EndTime: "17:00"},
		{Day: "Wednesday", Available: true, StartTime: "10:00", EndTime: "15:30"},
		{Day: "Sunday", Available: false},
	}

	slots := BuildSlots(weekly)

	require.Len(t, slots, 2)
	assert.Equal(t, "Monday", slots[0].Day)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "Wednesday", slots[1].Day)
	assert.Equal(t, "15:30", slots[1].EndTime)
}

func TestBuildSlotsAllUnavailable(t *testing.T) {
	weekly := []WeekdayInput{
		{Day: "Monday", Available: false},
		{Day: "Tuesday", Available: false},
	}

	assert.Empty(t, BuildSlots(weekly))
}

func TestMockClientRequiresTimeZone(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient()

	_, err := mock.CreateManagedUser(ctx, "pro@example.com", "Pro", "")
	require.Error(t, err)

	user, err := mock.CreateManagedUser(ctx, "pro@example.com", "Pro", "America/New_York")
	require.NoError(t, err)
	assert.NotEmpty(t, user.AccessToken)
	assert.NotEmpty(t, user.RefreshToken)

	scheduleID, err := mock.CreateSchedule(ctx, user.AccessToken, "Working Hours", "America/New_York", []DaySlot{
		{Day: "Monday", StartTime: "09:00", EndTime: "17:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), scheduleID)
}
