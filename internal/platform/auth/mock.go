package auth

import "context"

// MockVerifier resolves tokens from a fixed table for tests. Tokens missing
// from Users resolve to User, unless Error is set.
type MockVerifier struct {
	Users map[string]*User
	User  *User
	Error error
}

func (m *MockVerifier) Verify(_ context.Context, token string) (*User, error) {
	if u, ok := m.Users[token]; ok {
		return u, nil
	}
	if m.Error != nil {
		return nil, m.Error
	}
	if m.User == nil {
		return nil, ErrInvalidToken
	}
	return m.User, nil
}

// TestUser returns the default test caller.
func TestUser() *User {
	return &User{UID: "test-user-123", Email: "test@example.com", EmailVerified: true}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
