package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/caresync/internal/session"
)

func TestRootSubcommands(t *testing.T) {
	wanted := map[string]bool{
		"auth":         false,
		"appointments": false,
		"doctors":      false,
		"users":        false,
		"community":    false,
		"version":      false,
	}

	for _, c := range rootCmd.Commands() {
		if _, exists := wanted[c.Name()]; exists {
			wanted[c.Name()] = true
		}
	}

	for name, found := range wanted {
		assert.True(t, found, "subcommand %q not registered", name)
	}
}

func TestAuthSubcommands(t *testing.T) {
	wanted := map[string]bool{
		"login":        false,
		"logout":       false,
		"status":       false,
		"register":     false,
		"verify-email": false,
	}

	for _, c := range authCmd.Commands() {
		if _, exists := wanted[c.Name()]; exists {
			wanted[c.Name()] = true
		}
	}

	for name, found := range wanted {
		assert.True(t, found, "auth subcommand %q not registered", name)
	}
}

func TestBookFlagsRequired(t *testing.T) {
	for _, flag := range []string{"doctor", "date", "time"} {
		f := appointmentsBookCmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %q not found on appointments book", flag)
	}
}

func TestInitApp_WiresSessionIntoClient(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	t.Setenv("CARESYNC_API_URL", srv.URL)
	t.Setenv("CARESYNC_STATE_DIR", t.TempDir())

	require.NoError(t, initApp(context.Background()))
	a := getApp()

	assert.Equal(t, srv.URL, a.client.BaseURL())
	assert.False(t, a.session.IsAuthenticated())

	// No session yet, so no bearer token on the wire.
	_, err := a.client.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestInitApp_RestoresPersistedSession(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("CARESYNC_API_URL", "http://localhost:1")
	t.Setenv("CARESYNC_STATE_DIR", stateDir)

	require.NoError(t, initApp(context.Background()))
	getApp().store.Set(session.KeyAuthToken, "persisted-token")

	// A fresh process start sees the persisted token.
	require.NoError(t, initApp(context.Background()))
	assert.True(t, getApp().session.IsAuthenticated())
}
