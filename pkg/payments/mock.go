package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockClient 可配置的支付客户端 mock，实现 Client 接口
type MockClient struct {
	mu       sync.Mutex
	Accounts []AccountSeed

	// Outstanding 查询状态时返回的待补材料标记
	Outstanding bool
	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Accounts: make([]AccountSeed, 0),
	}
}

func (m *MockClient) failNext() bool {
	if m.FailNext {
		m.FailNext = false
		return true
	}
	return false
}

func (m *MockClient) CreateConnectAccount(ctx context.Context, seed AccountSeed) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext() {
		return "", errors.New("mock payment provider failure")
	}

	m.Accounts = append(m.Accounts, seed)
	return fmt.Sprintf("acct_mock_%d", len(m.Accounts)), nil
}

func (m *MockClient) CreateOnboardingLink(ctx context.Context, accountID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext() {
		return "", errors.New("mock payment provider failure")
	}
	return "https://connect.example.com/setup/" + accountID, nil
}

func (m *MockClient) GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext() {
		return nil, errors.New("mock payment provider failure")
	}
	return &AccountStatus{
		AccountID:               accountID,
		ChargesEnabled:          !m.Outstanding,
		PayoutsEnabled:          !m.Outstanding,
		OutstandingRequirements: m.Outstanding,
	}, nil
}

func (m *MockClient) ChargeOnboardingFee(ctx context.Context, accountID string, amountCents int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext() {
		return "", errors.New("mock payment provider failure")
	}
	return fmt.Sprintf("pi_mock_%s_%d", accountID, amountCents), nil
}
