package garmin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestServers stands up paired SSO and API servers and a client wired to
// them. The SSO server accepts any credentials.
func newTestServers(t *testing.T, apiHandler http.Handler) *Client {
	t.Helper()

	sso := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signin" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"serviceTicket":"ST-test"}`))
	}))
	t.Cleanup(sso.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth-service/oauth/exchange/user/2.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	if apiHandler != nil {
		mux.Handle("/", apiHandler)
	}
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	return New("user@example.com", "hunter2", WithBaseURLs(sso.URL, api.URL))
}

func TestLoginInstallsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth atomic.Value
	client := newTestServers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := client.Activity.GetActivityTypes(ctx); err != nil {
		t.Fatalf("GetActivityTypes() error = %v", err)
	}

	if got := gotAuth.Load(); got != "Bearer tok" {
		t.Errorf("Authorization header = %q, want %q", got, "Bearer tok")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	sso := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(sso.Close)

	client := New("user@example.com", "wrong", WithBaseURLs(sso.URL, sso.URL))

	err := client.Login(context.Background())
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v (%T), want AuthenticationError", err, err)
	}
}

func TestLoginUnreachableHost(t *testing.T) {
	t.Parallel()

	// Closed server: every request fails at the dial.
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	client := New("user@example.com", "hunter2", WithBaseURLs(deadURL, deadURL))

	err := client.Login(context.Background())
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Login() error = %v (%T), want ConnectionError", err, err)
	}
}

func TestRegionSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantSSO string
		wantAPI string
	}{
		{
			name:    "domestic by default",
			wantSSO: "https://sso.garmin.com/sso",
			wantAPI: "https://connectapi.garmin.com",
		},
		{
			name:    "china region",
			opts:    []Option{WithChinaRegion()},
			wantSSO: "https://sso.garmin.cn/sso",
			wantAPI: "https://connectapi.garmin.cn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := New("u", "p", tt.opts...)
			if client.ssoURL != tt.wantSSO {
				t.Errorf("ssoURL = %q, want %q", client.ssoURL, tt.wantSSO)
			}
			if client.apiURL != tt.wantAPI {
				t.Errorf("apiURL = %q, want %q", client.apiURL, tt.wantAPI)
			}
		})
	}
}

func TestExpiredSessionMapsToAuthenticationError(t *testing.T) {
	t.Parallel()

	client := newTestServers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))

	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, err := client.User.GetUserSummary(ctx, time.Now())
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("GetUserSummary() error = %v (%T), want AuthenticationError", err, err)
	}
}

func TestGearDefaultWrite(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		query  string
	}
	calls := make(chan call, 1)

	client := newTestServers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls <- call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := client.Gear.SetGearDefault(ctx, 5, "abc-123", true); err != nil {
		t.Fatalf("SetGearDefault() error = %v", err)
	}

	got := <-calls
	if got.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", got.method)
	}
	wantPath := "/gear-service/gear/abc-123/activityType/5"
	if got.path != wantPath {
		t.Errorf("path = %s, want %s", got.path, wantPath)
	}
	if got.query != "defaultGear=true" {
		t.Errorf("query = %s, want defaultGear=true", got.query)
	}
}
