package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Session is the token pair returned by login and refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResult is the login response: the session plus the server's view of
// the account.
type LoginResult struct {
	User         json.RawMessage `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	IsNewUser    bool            `json:"is_new_user"`
}

// Login exchanges an identity-provider token for a session. The provider
// token rides the Authorization header, so this bypasses the client's own
// token source for this one call.
func (c *Client) Login(ctx context.Context, providerToken string) (LoginResult, error) {
	var out LoginResult

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Authorization", "Bearer "+providerToken)

	res, err := c.http.Do(req)
	if err != nil {
		return out, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(res.Body)
		return out, &APIError{StatusCode: res.StatusCode, Reason: reason(raw, "failed to log in")}
	}

	var wire struct {
		Data LoginResult `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&wire); err != nil {
		return out, err
	}
	return wire.Data, nil
}

// Refresh rotates the refresh token and returns a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	var wire struct {
		Data Session `json:"data"`
	}
	in := map[string]string{"refresh_token": refreshToken}
	err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, in, &wire, "refresh session")
	return wire.Data, err
}

// Logout revokes the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	in := map[string]string{"refresh_token": refreshToken}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, in, nil, "log out")
}
