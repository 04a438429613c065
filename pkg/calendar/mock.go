package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockClient 可配置的排期客户端 mock，实现 Client 接口
type MockClient struct {
	mu        sync.Mutex
	Users     []ManagedUser
	Schedules [][]DaySlot

	// FailUserCreate / FailScheduleCreate 置位后对应调用返回 mock 错误并自动复位
	FailUserCreate     bool
	FailScheduleCreate bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Users:     make([]ManagedUser, 0),
		Schedules: make([][]DaySlot, 0),
	}
}

func (m *MockClient) CreateManagedUser(ctx context.Context, email, name, timeZone string) (*ManagedUser, error) {
	if timeZone == "" {
		return nil, fmt.Errorf("timeZone is required for managed user creation")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUserCreate {
		m.FailUserCreate = false
		return nil, errors.New("mock calendar user creation failure")
	}

	user := ManagedUser{
		ID:           int64(len(m.Users) + 1),
		Email:        email,
		AccessToken:  fmt.Sprintf("mock-access-%d", len(m.Users)+1),
		RefreshToken: fmt.Sprintf("mock-refresh-%d", len(m.Users)+1),
	}
	m.Users = append(m.Users, user)
	return &user, nil
}

func (m *MockClient) CreateSchedule(ctx context.Context, accessToken, name, timeZone string, slots []DaySlot) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailScheduleCreate {
		m.FailScheduleCreate = false
		return 0, errors.New("mock schedule creation failure")
	}

	m.Schedules = append(m.Schedules, slots)
	return int64(len(m.Schedules)), nil
}
