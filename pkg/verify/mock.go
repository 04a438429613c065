package verify

import (
	"context"
	"sync"
)

type MockCall struct {
	Method string
	Phone  string
	Code   string
}

// MockClient 可配置的验证客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// LineType 查询线路类型时返回的值，默认 mobile
	LineType LineType
	// ValidCode CheckCode 时视为正确的码
	ValidCode string
	// FailNext 置为 true 时，下一次调用返回 ErrThrottled 并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls:     make([]MockCall, 0),
		LineType:  LineTypeMobile,
		ValidCode: "123456",
	}
}

func (m *MockClient) record(method, phone, code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Method: method, Phone: phone, Code: code})

	if m.FailNext {
		m.FailNext = false
		return true
	}
	return false
}

// CallCount 某个方法被调用的次数
func (m *MockClient) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, c := range m.Calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

func (m *MockClient) LookupLineType(ctx context.Context, phoneE164 string) (LineType, error) {
	if m.record("lookup", phoneE164, "") {
		return LineTypeUnknown, ErrThrottled
	}
	return m.LineType, nil
}

func (m *MockClient) StartVerification(ctx context.Context, phoneE164 string) error {
	if m.record("start", phoneE164, "") {
		return ErrThrottled
	}
	return nil
}

func (m *MockClient) CheckCode(ctx context.Context, phoneE164, code string) (bool, error) {
	if m.record("check", phoneE164, code) {
		return false, ErrThrottled
	}
	return code == m.ValidCode, nil
}
