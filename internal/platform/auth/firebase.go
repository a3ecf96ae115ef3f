// Package auth verifies Firebase ID tokens and attaches the caller to the
// request context. Every customer form is owned by the UID found here.
package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// User is the authenticated caller.
type User struct {
	UID           string
	Email         string
	EmailVerified bool
}

// Authentication failures.
var (
	ErrNoToken      = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrUserDisabled = errors.New("user disabled")
	// ErrCertificateFetch maps to 503: the token may be fine but cannot be checked.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates a bearer token and returns its user.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// TokenClient is the part of *fbauth.Client the verifier needs.
type TokenClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier checks ID tokens with the Firebase Admin SDK, including revocation.
type FirebaseVerifier struct {
	client TokenClient
}

// NewFirebaseVerifier wraps client, usually an *fbauth.Client.
func NewFirebaseVerifier(client TokenClient) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, classify(err)
	}
	email, _ := token.Claims["email"].(string)
	verified, _ := token.Claims["email_verified"].(bool)
	return &User{UID: token.UID, Email: email, EmailVerified: verified}, nil
}

func classify(err error) error {
	switch {
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	default:
		return ErrInvalidToken
	}
}

// ExtractBearerToken returns the token of a "Bearer <token>" header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidToken
	}
	return token, nil
}

// Compile-time interface check
var _ Verifier = (*FirebaseVerifier)(nil)
