package service

import (
	"context"
	"encoding/base64"
	"encoding/json"

	firebase "firebase.google.com/go/v4"
	"github.com/fitstack/fitstack/internal/config"
	"google.golang.org/api/option"
)

// NewFirebaseIdentityClient initializes the Firebase Admin SDK from config
// and returns its auth client as an IdentityClient.
func NewFirebaseIdentityClient(ctx context.Context, cfg config.IdentityConfig) (IdentityClient, error) {
	// The private key arrives base64 encoded so it survives env files
	privateKey, err := base64.StdEncoding.DecodeString(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	credentialsJSON, err := json.Marshal(map[string]interface{}{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"private_key":  string(privateKey),
		"client_email": cfg.ClientEmail,
	})
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, err
	}

	return app.Auth(ctx)
}
