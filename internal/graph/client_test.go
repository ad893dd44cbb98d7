package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
)

func TestClient_GetBuildsVersionedURLWithToken(t *testing.T) {
	var gotPath, gotToken, gotPeriod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotPeriod = r.URL.Query().Get("period")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	client := NewClient(core.PlatformFacebook, "secret-token", "v21.0", WithBaseURL(ts.URL))

	query := url.Values{}
	query.Set("period", "day")
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Get(context.Background(), "me/insights/reach", query, &out))

	assert.Equal(t, "/v21.0/me/insights/reach", gotPath)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, "day", gotPeriod)
	assert.True(t, out.OK)
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":"123_456"}`))
	}))
	defer ts.Close()

	client := NewClient(core.PlatformFacebook, "tok", "v21.0", WithBaseURL(ts.URL))

	var out struct {
		ID string `json:"id"`
	}
	payload := map[string]interface{}{"message": "hello"}
	require.NoError(t, client.Post(context.Background(), "me/feed", payload, &out))

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "hello", gotBody["message"])
	assert.Equal(t, "123_456", out.ID)
}

func TestClient_NormalizesErrorResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
	}))
	defer ts.Close()

	client := NewClient(core.PlatformInstagram, "bad", "v21.0", WithBaseURL(ts.URL))

	err := client.Get(context.Background(), "me", nil, nil)
	require.Error(t, err)

	var be *errors.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, errors.CodeAuthFailed, be.Code)
	assert.Equal(t, "instagram", be.Platform)
	assert.False(t, be.Retryable)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	client := NewClient(core.PlatformWhatsApp, "tok", "v21.0", WithBaseURL(ts.URL))

	err := client.Get(context.Background(), "me", nil, nil)
	require.Error(t, err)

	var be *errors.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, errors.CodeNetworkError, be.Code)
	assert.True(t, be.Retryable)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{"graph offset layout", "2024-01-15T10:00:00+0000", false},
		{"rfc3339", "2024-01-15T10:00:00Z", false},
		{"empty", "", true},
		{"garbage", "yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTime(tt.input)
			assert.Equal(t, tt.zero, got.IsZero())
		})
	}
}

func TestMessagePage_NextCursor(t *testing.T) {
	var page MessagePage
	page.Paging.Cursors.After = "abc"
	assert.Empty(t, page.NextCursor(), "no next link means last page")

	page.Paging.Next = "https://graph.facebook.com/next"
	assert.Equal(t, "abc", page.NextCursor())
}
