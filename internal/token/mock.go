package token

import (
	"context"
	"fmt"
)

// Mock implements Provider for testing.
type Mock struct {
	// StatusOutput is returned by Status.
	StatusOutput string

	// TokenValue is returned by Token.
	TokenValue string

	// Errors maps operation names to errors to inject.
	Errors map[string]error

	// CallLog records all operations performed.
	CallLog []string
}

// NewMock creates a Mock with a plausible logged-in state.
func NewMock() *Mock {
	return &Mock{
		StatusOutput: "Logged in to github.com",
		TokenValue:   "gho_testtoken",
		Errors:       make(map[string]error),
	}
}

func (m *Mock) record(op string, args ...any) {
	entry := op
	for _, arg := range args {
		entry += fmt.Sprintf(" %v", arg)
	}
	m.CallLog = append(m.CallLog, entry)
}

func (m *Mock) Status(ctx context.Context) (string, error) {
	m.record("status")
	if err := m.Errors["status"]; err != nil {
		return "", err
	}
	return m.StatusOutput, nil
}

func (m *Mock) Token(ctx context.Context) (string, error) {
	m.record("token")
	if err := m.Errors["token"]; err != nil {
		return "", err
	}
	return m.TokenValue, nil
}

func (m *Mock) Refresh(ctx context.Context, scopes ...string) error {
	m.record("refresh", scopes)
	return m.Errors["refresh"]
}

var _ Provider = (*Mock)(nil)
