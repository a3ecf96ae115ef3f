// Package firebase initializes the Firebase Admin SDK for token verification.
package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and, optionally, a service account key.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // path to a service account JSON file
}

// clientOptions builds SDK options from cfg. Without a key file the SDK falls
// back to Application Default Credentials.
func clientOptions(cfg Config) ([]option.ClientOption, error) {
	if cfg.GoogleApplicationCredentials == "" {
		return nil, nil
	}
	creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// NewAuthClient returns an auth client for verifying ID tokens.
func NewAuthClient(ctx context.Context, cfg Config) (*auth.Client, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return client, nil
}
