package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TidyElephant/pkg/errors"
)

func TestValidateSeed(t *testing.T) {
	tests := []struct {
		name    string
		seed    AccountSeed
		wantErr bool
	}{
		{name: "company", seed: AccountSeed{Email: "pro@example.com", BusinessType: "company", BusinessName: "Tidy LLC"}},
		{name: "individual", seed: AccountSeed{Email: "pro@example.com", BusinessType: "individual"}},
		{name: "missing email", seed: AccountSeed{BusinessType: "company"}, wantErr: true},
		{name: "unknown business type", seed: AccountSeed{Email: "pro@example.com", BusinessType: "non_profit"}, wantErr: true},
		{name: "empty business type", seed: AccountSeed{Email: "pro@example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.seed)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.InvalidAccountInfo)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMockClientAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient()

	accountID, err := mock.CreateConnectAccount(ctx, AccountSeed{
		Email:        "pro@example.com",
		BusinessType: "individual",
	})
	require.NoError(t, err)
	require.NotEmpty(t, accountID)

	link, err := mock.CreateOnboardingLink(ctx, accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, link)

	status, err := mock.GetAccountStatus(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID, status.AccountID)
	assert.True(t, status.ChargesEnabled)
	assert.False(t, status.OutstandingRequirements)

	mock.Outstanding = true
	status, err = mock.GetAccountStatus(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, status.OutstandingRequirements)
	assert.False(t, status.ChargesEnabled)

	mock.FailNext = true
	_, err = mock.CreateConnectAccount(ctx, AccountSeed{Email: "x@example.com", BusinessType: "company"})
	assert.Error(t, err)
}
