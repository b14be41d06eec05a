package garmin

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// Login authenticates against the regional SSO endpoint and installs the
// resulting bearer token on the client. Safe to call again after session
// expiry; the new token replaces the old one.
func (c *Client) Login(ctx context.Context) error {
	ticket, err := c.signin(ctx)
	if err != nil {
		return err
	}

	token, err := c.exchange(ctx, ticket)
	if err != nil {
		return err
	}

	c.setToken(token)
	c.logger.DebugContext(ctx, "garmin login succeeded")
	return nil
}

// signin posts credentials to SSO and returns a one-time service ticket.
func (c *Client) signin(ctx context.Context) (string, error) {
	form := url.Values{
		"username": {c.username},
		"password": {c.password},
		"embed":    {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.ssoURL+"/signin", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectionError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", parseAPIError(resp)
	}

	var signinResp struct {
		ServiceTicket string `json:"serviceTicket"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{Cause: err}
	}
	if err := go_json.NewDecoder(bytes.NewReader(raw)).Decode(&signinResp); err != nil {
		return "", &AuthenticationError{Message: "unexpected signin response"}
	}
	if signinResp.ServiceTicket == "" {
		return "", &AuthenticationError{Message: "no service ticket issued"}
	}

	return signinResp.ServiceTicket, nil
}

// exchange trades a service ticket for an OAuth bearer token.
func (c *Client) exchange(ctx context.Context, ticket string) (*oauth2.Token, error) {
	form := url.Values{"ticket": {ticket}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/oauth-service/oauth/exchange/user/2.0", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := go_json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, &AuthenticationError{Message: "unexpected token response"}
	}
	if tokenResp.AccessToken == "" {
		return nil, &AuthenticationError{Message: "no access token issued"}
	}

	token := &oauth2.Token{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
	}
	if tokenResp.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}
	return token, nil
}
