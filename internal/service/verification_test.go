package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/verify"
)

func TestResendDelay(t *testing.T) {
	tests := []struct {
		attempts int
		want     int
	}{
		{attempts: 0, want: 60},
		{attempts: 1, want: 90},
		{attempts: 2, want: 120},
		{attempts: 3, want: 150},
		// 封顶 300 秒
		{attempts: 8, want: 300},
		{attempts: 100, want: 300},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempts_%d", tt.attempts), func(t *testing.T) {
			assert.Equal(t, tt.want, ResendDelay(tt.attempts))
		})
	}
}

func TestMapVendorError(t *testing.T) {
	s := &VerificationService{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "throttled", in: verify.ErrThrottled, want: pkgerrors.TooManyRequests},
		{name: "session expired", in: verify.ErrSessionNotFound, want: pkgerrors.VerificationNotStarted},
		{name: "max check attempts", in: verify.ErrMaxCheckAttempts, want: pkgerrors.VerificationMaxCheckAttempts},
		{name: "anything else", in: fmt.Errorf("twilio is down"), want: pkgerrors.VerificationUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.mapVendorError(tt.in))
		})
	}
}
