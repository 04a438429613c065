package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare ten digits", raw: "5551234567", want: "+15551234567"},
		{name: "masked input", raw: "(555) 123-4567", want: "+15551234567"},
		{name: "country code prefix", raw: "+1 555-123-4567", want: "+15551234567"},
		{name: "leading one without plus", raw: "15551234567", want: "+15551234567"},
		{name: "too short", raw: "555123456", wantErr: true},
		{name: "too long", raw: "55512345678", wantErr: true},
		{name: "letters only", raw: "call me maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	got, err := FormatDisplay("+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", got)

	got, err = FormatDisplay("5551234567")
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", got)

	_, err = FormatDisplay("555123")
	require.Error(t, err)
}

func TestNormalizeFormatRoundTrip(t *testing.T) {
	e164, err := NormalizePhone("(555) 123-4567")
	require.NoError(t, err)

	masked, err := FormatDisplay(e164)
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", masked)

	again, err := NormalizePhone(masked)
	require.NoError(t, err)
	assert.Equal(t, e164, again)
}
