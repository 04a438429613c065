package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientCheckCode(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient()

	approved, err := mock.CheckCode(ctx, "+15551234567", "123456")
	require.NoError(t, err)
	assert.True(t, approved)

	approved, err = mock.CheckCode(ctx, "+15551234567", "000000")
	require.NoError(t, err)
	assert.False(t, approved)

	assert.Equal(t, 2, mock.CallCount("check"))
	assert.Equal(t, 0, mock.CallCount("start"))
}

func TestMockClientFailNextResets(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient()
	mock.FailNext = true

	err := mock.StartVerification(ctx, "+15551234567")
	assert.ErrorIs(t, err, ErrThrottled)

	// 自动复位，后续调用恢复正常
	err = mock.StartVerification(ctx, "+15551234567")
	assert.NoError(t, err)

	lineType, err := mock.LookupLineType(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, LineTypeMobile, lineType)
}
