package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TidyElephant/internal/model"
)

func TestRebuildProvisionMessage(t *testing.T) {
	profile := &model.ProviderProfile{
		UserID:          42,
		DisplayName:     "Tidy Cleaning Co",
		WeeklyHoursJSON: `[{"day":"Monday","start_time":"09:00","end_time":"17:00","available":true}]`,
		CalTimeZone:     "America/Chicago",
		CalEmail:        "provider-15550001111@bookings.tidyelephant.com",
	}

	msg, err := rebuildProvisionMessage(profile)
	require.NoError(t, err)
	assert.Equal(t, int64(42), msg.UserID)
	assert.Equal(t, "Tidy Cleaning Co", msg.Name)
	// 消息只认提交时的快照，不读用户当前资料
	assert.Equal(t, "America/Chicago", msg.TimeZone)
	assert.Equal(t, "provider-15550001111@bookings.tidyelephant.com", msg.Email)
	require.Len(t, msg.Weekly, 1)
	assert.Equal(t, "Monday", msg.Weekly[0].Day)
}

func TestRebuildProvisionMessageIncompleteSnapshot(t *testing.T) {
	cases := []struct {
		name    string
		profile model.ProviderProfile
	}{
		{
			name:    "no weekly hours",
			profile: model.ProviderProfile{UserID: 1, CalTimeZone: "America/New_York", CalEmail: "a@b.com"},
		},
		{
			name: "undecodable weekly hours",
			profile: model.ProviderProfile{
				UserID:          2,
				WeeklyHoursJSON: "{not json",
				CalTimeZone:     "America/New_York",
				CalEmail:        "a@b.com",
			},
		},
		{
			name: "missing timezone",
			profile: model.ProviderProfile{
				UserID:          3,
				WeeklyHoursJSON: `[{"day":"Monday","start_time":"09:00","end_time":"17:00","available":true}]`,
				CalEmail:        "a@b.com",
			},
		},
		{
			name: "missing email",
			profile: model.ProviderProfile{
				UserID:          4,
				WeeklyHoursJSON: `[{"day":"Monday","start_time":"09:00","end_time":"17:00","available":true}]`,
				CalTimeZone:     "America/New_York",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rebuildProvisionMessage(&tc.profile)
			assert.Error(t, err)
		})
	}
}
