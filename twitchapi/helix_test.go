package twitchapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHelix(t *testing.T, handler http.HandlerFunc) *HelixClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   3600,
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/users", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &HelixClient{
		AppTokenSource: &TokenSource{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			TokenURL:     server.URL + "/oauth2/token",
		},
		ClientID: "test-client",
		BaseURL:  server.URL,
	}
}

func TestGetChannelByLogin(t *testing.T) {
	hc := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("login"); got != "somechannel" {
			t.Errorf("login query = %s, want somechannel", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %s", got)
		}
		if got := r.Header.Get("Client-Id"); got != "test-client" {
			t.Errorf("Client-Id = %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"id": "123456", "login": "somechannel", "display_name": "SomeChannel"},
			},
		})
	})

	ch, err := hc.GetChannelByLogin(context.Background(), "somechannel")
	if err != nil {
		t.Fatalf("GetChannelByLogin: %v", err)
	}
	if ch == nil {
		t.Fatal("expected a channel")
	}
	if ch.ID != "123456" || ch.Login != "somechannel" {
		t.Errorf("channel = %+v", ch)
	}
}

func TestGetChannelByLogin_NotFound(t *testing.T) {
	hc := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	})

	ch, err := hc.GetChannelByLogin(context.Background(), "no_such_channel")
	if err != nil {
		t.Fatalf("GetChannelByLogin: %v", err)
	}
	if ch != nil {
		t.Errorf("expected (nil, nil) for unknown login, got %+v", ch)
	}
}

func TestGetChannelByLogin_APIError(t *testing.T) {
	hc := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
	})

	if _, err := hc.GetChannelByLogin(context.Background(), "somechannel"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestGetChannelByLogin_EmptyLogin(t *testing.T) {
	hc := &HelixClient{}
	if _, err := hc.GetChannelByLogin(context.Background(), ""); err == nil {
		t.Error("expected error for empty login")
	}
}
